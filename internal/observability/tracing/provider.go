package tracing

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/fmis/internal/observability/obscontext"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls trace export.
type Config struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	ExporterEndpoint string
	SamplingRatio    float64
}

// NewProvider configures the OTLP exporter and registers the global tracer
// provider. When tracing is disabled a noop provider is returned.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (trace.TracerProvider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled || strings.TrimSpace(cfg.ExporterEndpoint) == "" {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		log.Debug("tracing disabled")
		return tp, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.ExporterEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	cancel()
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplingRatio(cfg.SamplingRatio)))),
		sdktrace.WithSpanProcessor(&requestIDSpanProcessor{}),
	)
	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer provider")
			return tp.Shutdown(ctx)
		},
	})

	log.Info("tracing initialized", zap.String("endpoint", cfg.ExporterEndpoint))
	return tp, nil
}

func samplingRatio(v float64) float64 {
	switch {
	case v <= 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

type requestIDSpanProcessor struct{}

func (p *requestIDSpanProcessor) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	if id := obscontext.RequestIDFromContext(ctx); id != "" {
		s.SetAttributes(attribute.String("request_id", id))
	}
}

func (p *requestIDSpanProcessor) OnEnd(sdktrace.ReadOnlySpan) {}

func (p *requestIDSpanProcessor) Shutdown(context.Context) error { return nil }

func (p *requestIDSpanProcessor) ForceFlush(context.Context) error { return nil }
