package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/respond"

	"github.com/gorilla/mux"
)

const RoleHeader = "X-User-Role"

type Handler struct {
	Orders   service.OrderServiceInterface
	Delivery service.DeliveryServiceInterface
	Carts    service.CartServiceInterface
	Now      func() time.Time
}

func NewHandler(orders service.OrderServiceInterface, delivery service.DeliveryServiceInterface, carts service.CartServiceInterface) *Handler {
	return &Handler{
		Orders:   orders,
		Delivery: delivery,
		Carts:    carts,
		Now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", respond.Health("order-svc")).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.transitionOrder).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/history", h.getHistory).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/courier", h.assignCourier).Methods("POST")
	r.HandleFunc("/api/kitchen/queue", h.kitchenQueue).Methods("GET")

	r.HandleFunc("/api/delivery/fee", h.calculateFee).Methods("POST")
	r.HandleFunc("/api/couriers", h.listCouriers).Methods("GET")
	r.HandleFunc("/api/couriers", h.createCourier).Methods("POST")
	r.HandleFunc("/api/couriers/{id}", h.getCourier).Methods("GET")
	r.HandleFunc("/api/couriers/{id}", h.updateCourier).Methods("PUT")

	r.HandleFunc("/api/cart/{userId}", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/{userId}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/{userId}/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/{userId}/items/{dishId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/{userId}/items/{dishId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/{userId}/checkout", h.checkout).Methods("POST")
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInactiveCourier),
		errors.Is(err, domain.ErrOrderClosed),
		errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}
	respond.Error(w, status, err.Error())
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateOrderInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	order, err := h.Orders.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var filter domain.OrderFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := lifecycle.ParseStatus(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = &status
	}
	filter.ClientID = r.URL.Query().Get("client_id")

	orders, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request) {
	role, err := lifecycle.ParseRole(r.Header.Get(RoleHeader))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	status, err := lifecycle.ParseStatus(payload.Status)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.Transition(r.Context(), mux.Vars(r)["id"], status, role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Orders.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, history)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.RatingQRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) kitchenQueue(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Orders.KitchenQueue(r.Context(), h.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tickets)
}

func (h *Handler) assignCourier(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CourierID int `json:"courier_id"`
	}
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	order, err := h.Delivery.Assign(r.Context(), mux.Vars(r)["id"], payload.CourierID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *Handler) calculateFee(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Address string `json:"address"`
	}
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	quote, err := h.Delivery.CalculateFee(payload.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, quote)
}

func (h *Handler) listCouriers(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	couriers, err := h.Delivery.ListCouriers(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, couriers)
}

func (h *Handler) createCourier(w http.ResponseWriter, r *http.Request) {
	var courier domain.Courier
	if err := respond.Decode(r, &courier); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if err := h.Delivery.CreateCourier(r.Context(), &courier); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, courier)
}

func (h *Handler) getCourier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid courier id")
		return
	}
	courier, err := h.Delivery.GetCourier(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, courier)
}

func (h *Handler) updateCourier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid courier id")
		return
	}
	var courier domain.Courier
	if err := respond.Decode(r, &courier); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	courier.ID = id
	if err := h.Delivery.UpdateCourier(r.Context(), &courier); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, courier)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DishID   int     `json:"dish_id"`
		Quantity int     `json:"quantity"`
		Note     *string `json:"note"`
	}
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	cart, err := h.Carts.AddItem(r.Context(), mux.Vars(r)["userId"], payload.DishID, payload.Quantity, payload.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid dish id")
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	cart, err := h.Carts.UpdateQuantity(r.Context(), mux.Vars(r)["userId"], dishID, payload.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid dish id")
		return
	}
	cart, err := h.Carts.RemoveItem(r.Context(), mux.Vars(r)["userId"], dishID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, cart)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var input domain.CheckoutInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	order, err := h.Carts.Checkout(r.Context(), mux.Vars(r)["userId"], input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}
