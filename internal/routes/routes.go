package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/hello-function/internal/greeting"
	"github.com/janisto/hello-function/internal/http/health"
	"github.com/janisto/hello-function/internal/http/v1/hello"
)

// DocsPath serves the interactive OpenAPI documentation.
const DocsPath = "/api-docs"

// NewAPI mounts a huma API on router. The default create hooks are dropped so
// response bodies are not extended with a $schema property.
func NewAPI(router chi.Router, version string) huma.API {
	cfg := huma.DefaultConfig("Hello Function API", version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	return humachi.New(router, cfg)
}

// Register wires the health check and the greeting operations into the router.
func Register(router chi.Router, api huma.API, h *greeting.Handler, prefix, version string) {
	router.Get("/health", health.Handler(version))
	hello.Register(api, h, prefix)
}
