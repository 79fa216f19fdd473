package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"tradedesk/internal/backend"
	"tradedesk/internal/config"
	"tradedesk/internal/domain"
	"tradedesk/internal/einvoice"
	"tradedesk/internal/gst"
	"tradedesk/internal/handler"
	"tradedesk/internal/logging"
	"tradedesk/internal/repository/postgres"
	"tradedesk/internal/repository/redisstore"
	"tradedesk/internal/router"
	"tradedesk/internal/service"
	"tradedesk/internal/session"
	s3storage "tradedesk/internal/storage/s3"
	"tradedesk/internal/validator"
)

const shutdownTimeout = 15 * time.Second

// @title Tradedesk API
// @version 1.0
// @description GST totals, quantity reconciliation and e-invoice export for work orders and sales invoices.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rdb, err := redisstore.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer rdb.Close()

	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize repositories
	exportRepo := postgres.NewEInvoiceExportRepo(db)
	auditRepo := postgres.NewSubmissionAuditRepo(db)
	revocations := redisstore.NewRevocationStore(rdb)

	seller := sellerParty(cfg.Company)
	classifier := gst.NewClassifier(seller.StateCode)
	docBackend := backend.NewClient(&cfg.Backend)

	// Initialize services
	sessions := session.NewManager(cfg.JWT, revocations)
	docSvc := service.NewDocumentService(docBackend, auditRepo, validator.New(), classifier)
	einvoiceSvc := service.NewEInvoiceService(docBackend, exportRepo, s3Client, einvoice.NewProjector(seller),
		service.EInvoiceServiceConfig{
			Bucket:        cfg.S3.Bucket,
			KeyPrefix:     cfg.Export.KeyPrefix,
			PresignExpiry: cfg.S3.PresignExpiry,
		})
	registerSvc := service.NewRegisterService(docBackend, classifier)

	r := router.Setup(sessions, cfg.CORS.AllowedOrigins, router.Handlers{
		Health:   handler.NewHealthHandler(db, rdb),
		Totals:   handler.NewTotalsHandler(docSvc),
		Sources:  handler.NewSourceHandler(docSvc),
		EInvoice: handler.NewEInvoiceHandler(einvoiceSvc),
		Register: handler.NewRegisterHandler(registerSvc),
		Session:  handler.NewSessionHandler(sessions),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Port).
			Str("backend", cfg.Backend.BaseURL).
			Str("home_state", classifier.HomeState).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func sellerParty(c config.CompanyConfig) domain.Party {
	return domain.Party{
		Name:      c.LegalName,
		GSTIN:     c.GSTIN,
		Address1:  c.Address1,
		Address2:  c.Address2,
		Location:  c.Location,
		Pincode:   c.Pincode,
		StateCode: c.StateCode,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}
