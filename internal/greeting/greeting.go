// Package greeting turns an inbound trigger request into the greeting payload
// returned by the hello function. It has no I/O of its own: hosting adapters
// translate their platform request into a Request and write the Response back.
package greeting

import (
	"context"
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/janisto/hello-function/internal/platform/timeutil"
)

const (
	// DefaultEnvironment is reported when no environment name is configured.
	DefaultEnvironment = "local"
	// DefaultSuffix follows the greeting in every message.
	DefaultSuffix = "This Azure Function was deployed using Jenkins CI/CD Pipeline."
	// DefaultName is greeted when the request carries no name.
	DefaultName = "World"

	// ContentTypeJSON is the only media type Handle produces.
	ContentTypeJSON = "application/json"
)

// Settings holds the configuration the handler reads. Zero values fall back to defaults.
type Settings struct {
	Environment    string
	RuntimeVersion string
	Suffix         string
}

// Request is the platform-neutral view of an invocation.
type Request struct {
	Method string
	// Name is the "name" query parameter; empty means no name was provided.
	Name string
}

// Body is the JSON payload of a greeting response.
type Body struct {
	Message        string `json:"message" doc:"Greeting message" example:"Hello, World! This Azure Function was deployed using Jenkins CI/CD Pipeline."`
	Timestamp      string `json:"timestamp" doc:"Response construction time (ISO-8601, UTC)" format:"date-time" example:"2024-01-15T10:30:00.000Z"`
	Environment    string `json:"environment" doc:"Deployment environment name" example:"local"`
	RuntimeVersion string `json:"runtimeVersion" doc:"Execution runtime version" example:"go1.25.5"`
}

// Response is the status/headers/body triple handed back to the hosting platform.
type Response struct {
	Status  int
	Headers map[string]string
	Body    Body
}

// Logger receives the diagnostic lines written while handling a request.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
}

// LoggerFunc adapts a plain function, such as logging.LogInfo, to Logger.
type LoggerFunc func(ctx context.Context, msg string, fields ...zap.Field)

// Info calls f.
func (f LoggerFunc) Info(ctx context.Context, msg string, fields ...zap.Field) {
	f(ctx, msg, fields...)
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...zap.Field) {}

// Handler builds greeting responses. It is immutable after New and safe for concurrent use.
type Handler struct {
	settings Settings
	clock    timeutil.Clock
	logger   Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for the timestamp field.
func WithClock(clock timeutil.Clock) Option {
	return func(h *Handler) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithLogger sets the sink for diagnostic log lines.
func WithLogger(logger Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Handler, filling empty settings with their defaults.
func New(settings Settings, opts ...Option) *Handler {
	if settings.Environment == "" {
		settings.Environment = DefaultEnvironment
	}
	if settings.RuntimeVersion == "" {
		settings.RuntimeVersion = runtime.Version()
	}
	if settings.Suffix == "" {
		settings.Suffix = DefaultSuffix
	}
	h := &Handler{
		settings: settings,
		clock:    timeutil.SystemClock,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Settings returns the effective settings after defaults were applied.
func (h *Handler) Settings() Settings {
	return h.settings
}

// Compose builds the greeting message. The name is used verbatim.
func (h *Handler) Compose(name string) string {
	if name == "" {
		name = DefaultName
	}
	return "Hello, " + name + "! " + h.settings.Suffix
}

// Handle answers a single invocation. Every request succeeds with 200.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	h.logger.Info(ctx, "HTTP trigger function processed a request.", zap.String("method", req.Method))

	message := h.Compose(req.Name)
	h.logger.Info(ctx, "generated response", zap.String("responseMessage", message))

	return Response{
		Status:  http.StatusOK,
		Headers: map[string]string{"Content-Type": ContentTypeJSON},
		Body: Body{
			Message:        message,
			Timestamp:      timeutil.FormatMillis(h.clock()),
			Environment:    h.settings.Environment,
			RuntimeVersion: h.settings.RuntimeVersion,
		},
	}
}
