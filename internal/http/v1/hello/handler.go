package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-function/internal/greeting"
)

// Register wires GET and POST {prefix}/hello to the greeting handler.
func Register(api huma.API, h *greeting.Handler, prefix string) {
	path := prefix + "/hello"

	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        path,
		Summary:     "Greet the caller",
		Tags:        []string{"hello"},
	}, handle(h, http.MethodGet))

	huma.Register(api, huma.Operation{
		OperationID: "post-hello",
		Method:      http.MethodPost,
		Path:        path,
		Summary:     "Greet the caller (POST)",
		Description: "Identical to GET. Any request body is ignored; the name is read from the query string.",
		Tags:        []string{"hello"},
	}, handle(h, http.MethodPost))
}

func handle(h *greeting.Handler, method string) func(context.Context, *Input) (*Output, error) {
	return func(ctx context.Context, input *Input) (*Output, error) {
		resp := h.Handle(ctx, greeting.Request{Method: method, Name: input.Name})
		return newOutput(resp), nil
	}
}
