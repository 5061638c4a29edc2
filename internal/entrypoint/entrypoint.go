package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkazlou/lingreader/internal/config"
	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	http_controllers "github.com/dkazlou/lingreader/internal/http"
	"github.com/dkazlou/lingreader/internal/offline"
	"github.com/dkazlou/lingreader/internal/remote"
	"github.com/dkazlou/lingreader/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the offline cache service and serves it over HTTP.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting LingReader v%s", version)

	// Probe for persistent storage once; everything downstream degrades
	// to "offline data never available" when the store cannot open.
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Printf("WARNING: offline store unavailable, continuing without persistence: %v", err)
		db = database.NewUnavailable()
	}
	defer db.Close()

	remoteClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout)

	prober := connectivity.NewProber(cfg.Connectivity.ProbeURL, cfg.Connectivity.ProbeSchedule, cfg.Connectivity.ProbeTimeout)
	if err := prober.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start connectivity prober: %v", err)
	}
	defer prober.Stop()

	svc := offline.NewService(db, remoteClient, prober)

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled && db.Available() {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			log.Fatalf("Failed to create download queue: %v", err)
		}
		taskClient.Register(tasks.NewDownloadTextQueue(svc))
		go taskClient.Start(context.Background())
		defer taskClient.Close()
	} else {
		log.Printf("Background download queue disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:   db,
		Offline:    svc,
		TaskClient: taskClient,
		Version:    version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	})
}
