package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/handlers"
	"tripplanner/middleware"
	"tripplanner/routes"
	"tripplanner/utils"
	"tripplanner/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planner web server",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP server port (overrides APP_PORT)")
	// Bound before PersistentPreRun loads the config, so the flag wins over APP_PORT.
	_ = viper.BindPFlag("APP_PORT", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	b, err := connectBackends(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("serve: failed to connect backends: %v", err)
	}
	defer b.close(logger)

	plannerSvc, err := newPlanner(cfg, b, logger)
	if err != nil {
		logger.Sugar().Fatalf("serve: failed to build planner: %v", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		logger.Sugar().Fatalf("serve: failed to parse templates: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.SessionMiddleware(config.IsProduction()))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	router.SetHTMLTemplate(tmpl)

	handler := handlers.NewItineraryHandler(plannerSvc, b.archive, logger)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(handler))

	utils.StartHealthMonitor(ctx, utils.RedisClients(), database.MongoClient)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("serve: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("serve: server is shutting down...")
	stop()

	// In-flight planning runs may take up to the agent timeout to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("serve: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("serve: server stopped gracefully")
}

func shutdownTimeout(cfg config.Config) time.Duration {
	return cfg.AgentTimeout() + 5*time.Second
}
