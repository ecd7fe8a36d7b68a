package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/respond"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	CatalogURL   string
	OrderURL     string
	RateURL      string
	AnalyticsURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

// hop-by-hop headers are not forwarded in either direction.
var hopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

func copyHeaders(dst, src http.Header) {
	for k, v := range src {
		if _, hop := hopHeaders[http.CanonicalHeaderKey(k)]; hop {
			continue
		}
		dst[k] = append([]string(nil), v...)
	}
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log := logger.WithCtx(r.Context())
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	log.Debug("proxy", "method", r.Method, "path", r.URL.Path, "target", targetURL)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Error("failed to create upstream request", "error", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("failed to proxy", "target", targetURL, "error", err)
		respond.Error(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Error("failed to copy response", "error", err)
	}
}

// Resolve picks the upstream for an API path. Dish sub-resources are matched
// before the catalog prefix because ratings and statistics live elsewhere.
func (g *Gateway) Resolve(path string) (string, bool) {
	switch {
	case strings.HasPrefix(path, "/api/dishes/") && strings.HasSuffix(path, "/ratings"):
		return g.config.RateURL, true
	case strings.HasPrefix(path, "/api/dishes/") &&
		(strings.HasSuffix(path, "/rating-distribution") || strings.HasSuffix(path, "/stats")):
		return g.config.AnalyticsURL, true
	case hasSegmentPrefix(path, "/api/dishes"), hasSegmentPrefix(path, "/api/categories"):
		return g.config.CatalogURL, true
	case hasSegmentPrefix(path, "/api/ratings"):
		return g.config.RateURL, true
	case hasSegmentPrefix(path, "/api/dashboard"), hasSegmentPrefix(path, "/api/analytics"):
		return g.config.AnalyticsURL, true
	case hasSegmentPrefix(path, "/api/orders"),
		hasSegmentPrefix(path, "/api/kitchen"),
		hasSegmentPrefix(path, "/api/delivery"),
		hasSegmentPrefix(path, "/api/couriers"),
		hasSegmentPrefix(path, "/api/cart"):
		return g.config.OrderURL, true
	}
	return "", false
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := g.Resolve(r.URL.Path)
	if !ok {
		logger.WithCtx(r.Context()).Warn("unmatched api route", "path", r.URL.Path)
		respond.Error(w, http.StatusNotFound, "API route not found")
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", respond.Health("api-gateway")).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
}
