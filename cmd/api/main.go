package main

import (
	"context"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"vegtrace/internal/api"
	"vegtrace/internal/gateway"
)

type serverConfig struct {
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":3001"`
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT" default:"localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"veg-api"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	var srvCfg serverConfig
	if err := envconfig.Process("veg", &srvCfg); err != nil {
		log.WithError(err).Fatal("loading server config")
	}
	var gwCfg gateway.Config
	if err := envconfig.Process("veg", &gwCfg); err != nil {
		log.WithError(err).Fatal("loading gateway config")
	}

	tp, err := initTracer(srvCfg)
	if err != nil {
		log.WithError(err).Fatal("initializing tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("shutting down tracer")
		}
	}()

	client, err := gateway.Connect(gwCfg)
	if err != nil {
		log.WithError(err).Fatal("connecting to fabric gateway")
	}
	defer client.Close()

	handler := api.NewHandler(client.Contract(), tp.Tracer(srvCfg.ServiceName), log)
	router := api.NewRouter(handler, log)

	srv := &http.Server{
		Addr:         srvCfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	log.WithFields(logrus.Fields{
		"addr":      srvCfg.ListenAddr,
		"channel":   gwCfg.ChannelName,
		"chaincode": gwCfg.ChaincodeName,
	}).Info("starting API server")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}

func initTracer(cfg serverConfig) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return tp, nil
}
