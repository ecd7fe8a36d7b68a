package httpapi

import (
	"net/http"

	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"

	"github.com/gorilla/mux"
)

func NewRouter(handler *Handler, opts httpserver.Options) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return httpserver.Wrap(r, opts)
}
