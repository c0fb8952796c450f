// Command function runs the Cloud Functions entry point locally through the
// Functions Framework, listening on PORT (default 8080).
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	"github.com/janisto/hello-function/functions/hello"
	"github.com/janisto/hello-function/internal/config"
	applog "github.com/janisto/hello-function/internal/platform/logging"
)

func main() {
	defer func() { _ = applog.Sync() }()

	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = strconv.Itoa(config.DefaultPort)
	}
	// Only the local runner needs FUNCTION_TARGET; Cloud Functions sets it itself.
	if os.Getenv("FUNCTION_TARGET") == "" {
		_ = os.Setenv("FUNCTION_TARGET", hello.EntryPoint)
	}

	applog.LogInfo(context.Background(), "functions framework listening", zap.String("port", port))
	if err := funcframework.Start(port); err != nil {
		applog.LogFatal(context.Background(), "funcframework.Start", err)
	}
}
