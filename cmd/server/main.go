package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/gameochtend/internal/accounts"
	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/config"
	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/invites"
	"github.com/mmynk/gameochtend/internal/records"
	"github.com/mmynk/gameochtend/internal/schema"
	"github.com/mmynk/gameochtend/internal/server"
	"github.com/mmynk/gameochtend/internal/service"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
	"github.com/mmynk/gameochtend/internal/storage/memory"
	"github.com/mmynk/gameochtend/internal/storage/mongo"
	"github.com/mmynk/gameochtend/internal/storage/sqlite"
	"github.com/mmynk/gameochtend/pkg/logging"
)

func main() {
	logger := logging.Setup()

	if err := run(logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv(logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer kv.Close()
	logger.Info("Storage initialized", "driver", cfg.StoreDriver)

	res, err := schema.Migrate(ctx, kv, logger, time.Now())
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	logger.Info("Schema ready", "from", res.From, "to", res.To)

	gm := groups.NewManager(kv, logger)
	profiles := accounts.NewProfileStore(kv)
	profiles.MaxPhotoBytes = cfg.MaxAttachmentBytes
	authenticator := auth.NewPasswordAuthenticator(accounts.NewAccountStore(kv), profiles)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := server.New(server.Services{
		Auth:       service.NewAuthService(authenticator, jwtManager, session.NewStore(kv), profiles, gm, logger),
		Groups:     service.NewGroupService(gm, logger),
		Invites:    service.NewInvitationService(invites.NewWorkflow(kv, gm, logger), logger),
		Checklist:  service.NewChecklistService(records.NewChecklist(kv, gm, logger), logger),
		Notes:      service.NewNoteService(records.NewNotes(kv, gm, logger), cfg.MaxAttachmentBytes, logger),
		Attendance: service.NewAttendanceService(records.NewAttendance(kv, gm, logger), logger),
	}, server.Options{
		JWT:       jwtManager,
		StaticDir: cfg.StaticPath,
		Registry:  reg,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (storage.KV, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return mongo.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return sqlite.New(cfg.DBPath)
	}
}
