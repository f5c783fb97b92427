package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fixmycity/issue-service/internal/config"
	"github.com/fixmycity/issue-service/internal/database"
	"github.com/fixmycity/issue-service/internal/handler"
	"github.com/fixmycity/issue-service/internal/router"
	"github.com/fixmycity/issue-service/internal/service"
	"github.com/fixmycity/issue-service/internal/storage"
)

// API is the HTTP application (mode api).
type API struct {
	cfg     *config.Config
	httpSrv *http.Server
}

// NewAPI validates configuration, migrates and opens the database, and
// wires services, handlers and the router into one http.Server.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	uploads, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	issueSvc := service.NewIssueService(db)
	commentSvc := service.NewCommentService(db)
	statsSvc := service.NewStatsService(db)

	issueHandler := handler.NewIssueHandler(issueSvc, uploads)
	commentHandler := handler.NewCommentHandler(commentSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(issueHandler, commentHandler, statsHandler, uploads.Dir()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Swagger UI:    %s/swagger", base)
	log.Printf("  Swagger spec:  %s/swagger/openapi.json", base)
	log.Printf("  Health:        %s/health", base)
	log.Printf("  Ready:         %s/ready", base)
	log.Printf("  API:           %s/api/", base)
	log.Printf("  Uploads:       %s/uploads/", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
