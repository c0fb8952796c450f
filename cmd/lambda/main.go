// Command lambda runs the hello function on AWS Lambda behind API Gateway.
// Set HELLO_EVENT_FORMAT=v2 for HTTP API payload format 2.0 integrations.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/janisto/hello-function/internal/config"
	"github.com/janisto/hello-function/internal/greeting"
	"github.com/janisto/hello-function/internal/platform/awslambda"
	applog "github.com/janisto/hello-function/internal/platform/logging"
)

const eventFormatEnv = "HELLO_EVENT_FORMAT"

func main() {
	defer func() { _ = applog.Sync() }()

	cfg, err := config.FromEnv()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	h := greeting.New(cfg.Greeting(), greeting.WithLogger(greeting.LoggerFunc(applog.LogInfo)))

	format := os.Getenv(eventFormatEnv)
	applog.LogInfo(context.Background(), "lambda starting",
		zap.String("environment", cfg.Environment),
		zap.String("eventFormat", format),
	)
	if format == "v2" {
		lambda.Start(awslambda.HTTPHandler(h))
		return
	}
	lambda.Start(awslambda.ProxyHandler(h))
}
