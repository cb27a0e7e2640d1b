// Package telemetry installs the OpenTelemetry tracer provider used by the
// instrumented HTTP transport.
package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/dmitrijs2005/madhelp/internal/logging"
)

type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// exporterOptions accepts either a full URL ("http://collector:4317") or a
// bare host:port, which is dialled without TLS.
func exporterOptions(endpoint string) []otlptracegrpc.Option {
	if strings.Contains(endpoint, "://") {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	}
}

// Setup exports spans to endpoint over OTLP/gRPC. With no endpoint tracing
// stays on the global no-op provider. Exporter failures are logged and
// never stop the client.
func Setup(ctx context.Context, serviceName, endpoint string, log logging.Logger) ShutdownFunc {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return noop
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOptions(endpoint)...)
	if err != nil {
		log.Warn(ctx, "otel exporter error", "error", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil {
		log.Warn(ctx, "otel resource error", "error", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Debug(ctx, "tracing enabled", "endpoint", endpoint)

	return provider.Shutdown
}
