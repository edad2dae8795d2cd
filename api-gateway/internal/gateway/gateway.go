package gateway

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL      string `env:"MENU_SVC_URL,default=http://localhost:8081"`
	OrderSvcURL     string `env:"ORDER_SVC_URL,default=http://localhost:8082"`
	AccountSvcURL   string `env:"ACCOUNT_SVC_URL,default=http://localhost:8083"`
	NotifySvcURL    string `env:"NOTIFY_SVC_URL,default=http://localhost:8084"`
	AnalyticsSvcURL string `env:"ANALYTICS_SVC_URL,default=http://localhost:8085"`
	// StaticDir holds the built storefront; empty disables it.
	StaticDir string `env:"STATIC_DIR"`
}

// route sends every path under prefix to one upstream.
type route struct {
	prefix  string
	service string
	target  string
}

type Gateway struct {
	config Config
	client HTTPClient
	routes []route
	log    *logrus.Entry
}

func NewGateway(config Config, client HTTPClient, log *logrus.Entry) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
		// More specific prefixes first.
		routes: []route{
			{"/api/admin/orders", "order", config.OrderSvcURL},
			{"/api/admin/users", "account", config.AccountSvcURL},
			{"/api/admin/dashboard", "analytics", config.AnalyticsSvcURL},
			{"/api/admin", "menu", config.MenuSvcURL},
			{"/api/cart", "order", config.OrderSvcURL},
			{"/api/checkout", "order", config.OrderSvcURL},
			{"/api/orders", "order", config.OrderSvcURL},
			{"/api/auth", "account", config.AccountSvcURL},
			{"/api/profile", "account", config.AccountSvcURL},
			{"/api/newsletter", "notify", config.NotifySvcURL},
			{"/functions", "notify", config.NotifySvcURL},
			{"/api/menu", "menu", config.MenuSvcURL},
			{"/api/categories", "menu", config.MenuSvcURL},
			{"/api/gallery", "menu", config.MenuSvcURL},
			{"/api/team", "menu", config.MenuSvcURL},
			{"/api/settings", "menu", config.MenuSvcURL},
			{"/uploads", "menu", config.MenuSvcURL},
		},
	}
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Match returns the upstream for path, if any.
func (g *Gateway) Match(path string) (service, target string, ok bool) {
	for _, rt := range g.routes {
		if hasPrefix(path, rt.prefix) {
			return rt.service, rt.target, true
		}
	}
	return "", "", false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.WithError(err).Error("Failed to create upstream request")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	for k, v := range r.Header {
		req.Header[k] = v
	}
	if ip := clientIP(r); ip != "" {
		if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
			ip = prior + ", " + ip
		}
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.WithError(err).WithField("target", targetURL).Error("Failed to proxy request")
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.WithError(err).Warn("Failed to copy upstream response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if _, target, ok := g.Match(path); ok {
		g.log.WithFields(logrus.Fields{"method": r.Method, "path": path, "target": target}).Debug("Proxying request")
		g.ProxyRequest(w, r, target)
		return
	}

	if strings.HasPrefix(path, "/api/") || g.config.StaticDir == "" {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	http.ServeFile(w, r, filepath.Join(g.config.StaticDir, "index.html"))
}

func (g *Gateway) SetupRoutes(metrics *Metrics, limiter *RateLimiter) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	proxied := r.NewRoute().Subrouter()
	proxied.Use(metrics.Middleware(g.serviceLabel), limiter.Middleware)
	if g.config.StaticDir != "" {
		proxied.PathPrefix("/assets/").Handler(http.FileServer(http.Dir(g.config.StaticDir)))
	}
	proxied.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func (g *Gateway) serviceLabel(r *http.Request) string {
	if service, _, ok := g.Match(r.URL.Path); ok {
		return service
	}
	return "gateway"
}

// clientIP is the host of the TCP peer. X-Forwarded-For is client supplied
// and never used as an identity.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
