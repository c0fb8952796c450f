// Package awslambda exposes the greeting handler behind Amazon API Gateway
// Lambda proxy integrations.
package awslambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/janisto/hello-function/internal/greeting"
	applog "github.com/janisto/hello-function/internal/platform/logging"
)

const traceparentHeader = "traceparent"

// ProxyHandler answers REST API (payload v1) proxy events.
func ProxyHandler(h *greeting.Handler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = withInvocation(ctx, header(req.Headers, traceparentHeader))
		resp := h.Handle(ctx, greeting.Request{
			Method: req.HTTPMethod,
			Name:   req.QueryStringParameters["name"],
		})
		body, err := marshal(resp)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return events.APIGatewayProxyResponse{
			StatusCode: resp.Status,
			Headers:    resp.Headers,
			Body:       body,
		}, nil
	}
}

// HTTPHandler answers HTTP API (payload v2) events.
func HTTPHandler(h *greeting.Handler) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		ctx = withInvocation(ctx, header(req.Headers, traceparentHeader))
		resp := h.Handle(ctx, greeting.Request{
			Method: req.RequestContext.HTTP.Method,
			Name:   req.QueryStringParameters["name"],
		})
		body, err := marshal(resp)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		return events.APIGatewayV2HTTPResponse{
			StatusCode: resp.Status,
			Headers:    resp.Headers,
			Body:       body,
		}, nil
	}
}

// withInvocation scopes the logger to the Lambda request ID, plus the trace
// context when the caller forwarded one.
func withInvocation(ctx context.Context, traceparent string) context.Context {
	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	return applog.WithRequest(ctx, traceparent, requestID)
}

func marshal(resp greeting.Response) (string, error) {
	b, err := json.Marshal(resp.Body)
	if err != nil {
		return "", fmt.Errorf("marshal greeting body: %w", err)
	}
	return string(b), nil
}

// header looks up name in API Gateway's header map, which preserves client casing.
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	canonical := http.CanonicalHeaderKey(name)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}
