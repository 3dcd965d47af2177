package tracing

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("SERVICE_NAME", "")

	called := false
	orig := newExporterFunc
	newExporterFunc = func(ctx context.Context) (sdktrace.SpanExporter, error) {
		called = true
		return tracetest.NewInMemoryExporter(), nil
	}
	defer func() { newExporterFunc = orig }()

	tp, tracer, err := InitTracer(context.Background())
	if err != nil {
		t.Fatalf("init tracer: %v", err)
	}
	defer tp.Shutdown(context.Background())

	if called {
		t.Fatal("exporter should not be built without an endpoint")
	}
	if tracer == nil {
		t.Fatal("expected tracer")
	}
	if got := serviceName(); got != defaultServiceName {
		t.Fatalf("expected default service name, got %s", got)
	}
}

func TestInitTracerExportsToEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	t.Setenv("OTEL_SERVICE_NAME", "bridge-test")

	exporter := tracetest.NewInMemoryExporter()
	orig := newExporterFunc
	newExporterFunc = func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return exporter, nil
	}
	defer func() { newExporterFunc = orig }()

	tp, tracer, err := InitTracer(context.Background())
	if err != nil {
		t.Fatalf("init tracer: %v", err)
	}
	_, span := tracer.Start(context.Background(), "test-span")
	span.End()
	if err := tp.ForceFlush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "test-span" {
		t.Fatalf("unexpected exported spans: %+v", spans)
	}
	_ = tp.Shutdown(context.Background())
}

func TestInitTracerExporterError(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	orig := newExporterFunc
	newExporterFunc = func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return nil, errors.New("dial failed")
	}
	defer func() { newExporterFunc = orig }()

	if _, _, err := InitTracer(context.Background()); err == nil {
		t.Fatal("expected exporter error")
	}
}
