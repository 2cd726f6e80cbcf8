package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ishop/internal/common"
	"ishop/internal/handlers"
	"ishop/internal/jobs"
	"ishop/internal/jobs/background"
	"ishop/internal/metrics"
	"ishop/internal/middleware"
	"ishop/internal/repositories"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(reg)

	a, closeApp, err := newApp(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer closeApp()

	validate := common.NewValidator()

	// Repositories
	productRepo := repositories.NewProductRepo(a.pool)
	supplierRepo := repositories.NewSupplierRepository(a.pool)
	shippingRepo := repositories.NewShippingRepo(a.pool)
	cartRepo := repositories.NewSavedCartRepo(a.pool)

	// Services
	policy := services.NewImagePolicy(cfg.Images.MaxBytes, cfg.Images.AllowedExtensions)
	imageSvc := services.NewImageService(a.imageRepo, productRepo, a.cache, a.store, policy, log, m)
	productSvc := services.NewProductService(productRepo, a.imageRepo, a.cache, a.store, validate, log)
	supplierSvc := services.NewSupplierService(supplierRepo, validate)
	shippingSvc := services.NewShippingService(shippingRepo, validate, log)
	cartSvc := services.NewCartService(cartRepo, validate)

	// Background jobs
	sweeper := jobs.NewOrphanSweeper(a.store, a.imageRepo, cfg.Jobs.OrphanGracePeriod, log, m)
	scheduler, err := background.NewJobScheduler(sweeper, cfg.Jobs.OrphanSweepInterval, log)
	if err != nil {
		return err
	}

	authGuard, stopAuth, err := middleware.NewJWTMiddleware(ctx, cfg.Auth.JWTSecret, cfg.Auth.JWKSURL, log)
	if err != nil {
		return err
	}
	defer stopAuth()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewCustomValidator(validate)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log, m))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.SecurityHeaders(cfg.Server.ContentSecurityPolicy))
	e.Use(echomw.RemoveTrailingSlash())
	e.Use(echomw.BodyLimit(cfg.Server.BodyLimit))

	registerRoutes(e, routeDeps{
		images:    handlers.NewImageHandlers(imageSvc, cfg.Images.URLExpiry),
		products:  handlers.NewProductHandlers(productSvc),
		suppliers: handlers.NewSupplierHandlers(supplierSvc),
		shippings: handlers.NewShippingHandlers(shippingSvc),
		carts:     handlers.NewCartHandlers(cartSvc),
		health:    handlers.NewHealthHandlers(a.pool, a.cache, a.store, version),
		metrics:   reg,
		authGuard: authGuard,
	})
	if cfg.Storage.Driver == "filesystem" && cfg.Storage.PublicBaseURL == "" {
		// blob URLs are host relative, so the files are served from here
		e.Static("/images", cfg.Storage.RootPath+"/images")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("ishop server starting", zap.String("version", version), zap.String("addr", cfg.Server.Addr()))
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	scheduler.Start()

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := scheduler.Stop(); err != nil {
			log.Warn("scheduler stop failed", zap.Error(err))
		}
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
