package logging

import (
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context format: {version}-{trace-id}-{parent-id}-{trace-flags}
// Example: 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

func loggerWithTrace(base *zap.Logger, header, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// traceFields extracts trace, span and sampling flag from a traceparent header.
// Both Azure Functions and Cloud Run forward this header to the worker.
func traceFields(header string) []zap.Field {
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return nil
	}
	return []zap.Field{
		zap.String("traceId", matches[2]),
		zap.String("spanId", matches[3]),
		zap.Bool("traceSampled", matches[4] == "01"),
	}
}

func traceID(header string) string {
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return ""
	}
	return matches[2]
}
