package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/pathfinder/config"
	"github.com/lshigami/pathfinder/internal/controller"
	adminctrl "github.com/lshigami/pathfinder/internal/controller/admin"
	userctrl "github.com/lshigami/pathfinder/internal/controller/user"
	"github.com/lshigami/pathfinder/internal/datastore"
	"github.com/lshigami/pathfinder/internal/logger"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/lshigami/pathfinder/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Pathfinder Assessment API
// @version 1.0
// @description Candidate assessment portal: registration by assignment, timed exams with autosave, and AI-assisted grading.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewGinEngine,
		),

		// Storage
		fx.Provide(
			service.NewSeeder,
			func(cfg *config.Config, seeder *service.Seeder) *datastore.DataStore {
				return datastore.NewFromConfig(cfg, seeder.Seed)
			},
			func(ds *datastore.DataStore) repository.Provider { return ds },
		),

		// Services
		fx.Provide(
			service.NewGeminiLLMService,
			service.NewGraderService,
			service.NewCodeRunnerService,
			service.NewRegistrationService,
			service.NewSubmissionService,
			service.NewPaperService,
			service.NewAssignmentService,
			service.NewCandidateService,
			service.NewProvisioningService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewCandidateController,
			func(ds *datastore.DataStore) *controller.HealthController {
				return controller.NewHealthController(ds)
			},
		),

		fx.Invoke(ManageStorage),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// ManageStorage picks the backend before the server accepts requests and
// releases it, and the Gemini client, on shutdown.
func ManageStorage(lc fx.Lifecycle, ds *datastore.DataStore, llm service.GeminiLLMService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ds.Initialize()
			log.Info().Str("mode", string(ds.Mode())).Msg("Storage ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := llm.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Gemini client")
			}
			return ds.Close()
		},
	})
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	healthCtrl *controller.HealthController,
	adminCtrl *adminctrl.AdminController,
	candidateCtrl *userctrl.CandidateController,
) {
	api := router.Group("/api/v1")
	api.GET("/health", healthCtrl.Health)
	candidateCtrl.RegisterRoutes(api)
	adminCtrl.RegisterRoutes(api.Group("/admin"))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
