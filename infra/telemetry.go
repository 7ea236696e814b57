package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/tnqbao/gau-sequia-service/config"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/tnqbao/gau-sequia-service"

type TelemetryClient struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// InitTelemetry installs OTLP trace and metric providers when an endpoint is
// configured. Without one the global no-op providers stay in place.
func InitTelemetry(ctx context.Context, cfg *config.EnvConfig) (*TelemetryClient, error) {
	client := &TelemetryClient{}

	if cfg.Grafana.OTLPEndpoint != "" {
		res := serviceResource(cfg)

		var traceExporter *otlptrace.Exporter
		traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		client.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(client.tracerProvider)

		metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		client.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(client.meterProvider)

		if err := runtime.Start(runtime.WithMeterProvider(client.meterProvider)); err != nil {
			return nil, fmt.Errorf("start runtime instrumentation: %w", err)
		}
	}

	client.Tracer = otel.Tracer(instrumentationName)
	client.Meter = otel.Meter(instrumentationName)
	return client, nil
}

// NewNopTelemetry returns a client bound to the global providers.
func NewNopTelemetry() *TelemetryClient {
	return &TelemetryClient{
		Tracer: otel.Tracer(instrumentationName),
		Meter:  otel.Meter(instrumentationName),
	}
}

func (t *TelemetryClient) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		errs = append(errs, t.tracerProvider.Shutdown(ctx))
	}
	if t.meterProvider != nil {
		errs = append(errs, t.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func serviceResource(cfg *config.EnvConfig) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", cfg.Grafana.ServiceName),
		attribute.String("deployment.environment", cfg.Environment.Mode),
		attribute.String("service.namespace", cfg.Environment.Group),
	)
}
