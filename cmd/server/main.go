package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/devghori1264/aerophoenix/osplugin/internal/admission"
	"github.com/devghori1264/aerophoenix/osplugin/internal/api"
	"github.com/devghori1264/aerophoenix/osplugin/internal/config"
	"github.com/devghori1264/aerophoenix/osplugin/internal/configstore"
	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
	"github.com/devghori1264/aerophoenix/osplugin/internal/lifecycle"
	"github.com/devghori1264/aerophoenix/osplugin/internal/logging"
	natsclient "github.com/devghori1264/aerophoenix/osplugin/internal/nats"
	"github.com/devghori1264/aerophoenix/osplugin/internal/proto"
	"github.com/devghori1264/aerophoenix/osplugin/internal/reconcile"
	"github.com/devghori1264/aerophoenix/osplugin/internal/server"
	"github.com/devghori1264/aerophoenix/osplugin/internal/storage"
	"github.com/devghori1264/aerophoenix/osplugin/internal/tracing"
	"github.com/devghori1264/aerophoenix/osplugin/internal/translator"
	"github.com/devghori1264/aerophoenix/osplugin/internal/validate"
)

func main() {
	fs := pflag.NewFlagSet("osplugin", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log, _, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("osplugin exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := tracing.Init(cfg.Tracing.Enabled, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()
	fsys := afero.NewOsFs()

	// Create storage
	store, err := storage.NewBadgerStore(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open badger store: %w", err)
	}
	defer store.Close()

	configs, err := configstore.New(fsys, cfg.Config.Dir, cfg.Config.MaxFileBytes)
	if err != nil {
		return err
	}
	backends, err := heat.NewHostClientFactory(configs, cfg.Backend.Timeout, cfg.Backend.ClientCacheSize, nil)
	if err != nil {
		return err
	}
	defer backends.Close()

	gate, err := admission.NewGate(fsys, cfg.Packages.Dir, translator.New(fsys), cfg.Packages.MaxExtractedBytes, log)
	if err != nil {
		return err
	}

	var keyPEM []byte
	if cfg.Auth.JWTPublicKeyFile != "" {
		if keyPEM, err = afero.ReadFile(fsys, cfg.Auth.JWTPublicKeyFile); err != nil {
			return fmt.Errorf("read token key: %w", err)
		}
	}
	validator, err := validate.NewValidator(keyPEM)
	if err != nil {
		return err
	}
	if !validator.Verifies() {
		log.Warn("no token public key configured, access token signatures are not verified")
	}

	ropts := reconcile.Options{
		Interval: cfg.Reconcile.Interval,
		Subject:  cfg.NATS.Subject,
		Logger:   log,
	}
	if cfg.NATS.URL != "" {
		pub, err := natsclient.NewPublisher(cfg.NATS.URL, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		ropts.Publisher = pub
	}
	rec := reconcile.New(store, backends, ropts)
	defer rec.Stop()
	if _, err := rec.Resume(ctx); err != nil {
		return fmt.Errorf("resume reconciliation: %w", err)
	}

	ctl := lifecycle.New(validator, store, backends, gate, configs, rec, lifecycle.Options{
		StackTimeoutMinutes: cfg.Backend.StackTimeoutMinutes,
		Logger:              log,
		Tracer:              tp.Tracer("osplugin"),
	})
	srv := server.New(ctl, log, server.Options{
		Spool:     fsys,
		SpoolDir:  cfg.Packages.SpoolDir,
		MaxUpload: cfg.Packages.MaxUploadBytes,
		MaxConfig: cfg.Config.MaxFileBytes,
	})

	// Start gRPC server
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.GRPCAddr, err)
	}
	grpcServer := server.NewGRPCServer(cfg.Server.MaxConcurrentRequests, cfg.Server.MaxMessageBytes)
	srv.RegisterGRPC(grpcServer)
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(proto.AppLCM_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	errc := make(chan error, 3)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	// Start HTTP shim
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.NewHTTPHandler(srv, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.Server.HTTPAddr != "" {
		go func() {
			log.Info("HTTP shim listening", zap.String("addr", cfg.Server.HTTPAddr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("http listen: %w", err)
			}
		}()
	}

	// Metrics endpoint
	mux := http.NewServeMux()
	api.RegisterMetrics(mux)
	metricsServer := &http.Server{Addr: cfg.Server.MetricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	if cfg.Server.MetricsAddr != "" {
		go func() {
			log.Info("Prometheus metrics available", zap.String("addr", cfg.Server.MetricsAddr+"/metrics"))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	// Graceful shutdown
	select {
	case <-ctx.Done():
		log.Info("shutdown initiated")
	case err = <-errc:
		log.Error("server failed, shutting down", zap.Error(err))
	}

	healthSrv.Shutdown()
	grpcServer.GracefulStop()
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(sctx); err != nil {
		log.Warn("http server shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(sctx); err != nil {
		log.Warn("metrics server shutdown", zap.Error(err))
	}
	log.Info("shutdown complete")
	return err
}
