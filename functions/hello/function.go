// Package hello registers the greeting as a Google Cloud Functions HTTP function
// named "Hello". Deploy with --entry-point=Hello, or run cmd/function locally.
package hello

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/janisto/hello-function/internal/config"
	"github.com/janisto/hello-function/internal/greeting"
	applog "github.com/janisto/hello-function/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-function/internal/platform/middleware"
	"github.com/janisto/hello-function/internal/platform/respond"
)

// EntryPoint is the function name the framework dispatches to.
const EntryPoint = "Hello"

func init() {
	cfg, err := config.FromEnv()
	if err != nil {
		applog.LogError(context.Background(), "invalid configuration, using defaults", err)
		cfg = config.Config{}
	}
	h := greeting.New(cfg.Greeting(), greeting.WithLogger(greeting.LoggerFunc(applog.LogInfo)))
	functions.HTTP(EntryPoint, NewHandler(h).ServeHTTP)
}

// NewHandler wraps the greeting handler with request ID, logging and panic recovery.
func NewHandler(h *greeting.Handler) http.Handler {
	var handler http.Handler = serve(h)
	handler = respond.Recoverer()(handler)
	handler = applog.AccessLogger()(handler)
	handler = applog.RequestLogger()(handler)
	return appmiddleware.RequestID()(handler)
}

func serve(h *greeting.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h.Handle(r.Context(), greeting.Request{
			Method: r.Method,
			Name:   r.URL.Query().Get("name"),
		})
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.Status)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			applog.LogError(r.Context(), "write greeting response", err)
		}
	}
}
