package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/paper2exam/config"
	_ "github.com/lshigami/paper2exam/docs" // Swagger docs
	examctrl "github.com/lshigami/paper2exam/internal/controller/exam"
	paperctrl "github.com/lshigami/paper2exam/internal/controller/paper"
	"github.com/lshigami/paper2exam/internal/logger"
	"github.com/lshigami/paper2exam/internal/repository"
	"github.com/lshigami/paper2exam/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Paper2Exam API
// @version 1.0
// @description Turns uploaded papers into IELTS and TOEIC reading exams, scores submissions and runs the exam timer.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewSessionRepository,
		),

		fx.Provide(
			service.NewExamBuilderService,
			service.NewFeedbackLLMService,
			service.NewScoreConverterService,
			service.NewExamSessionService,
		),

		fx.Provide(
			paperctrl.NewPaperController,
			examctrl.NewExamController,
		),

		fx.Invoke(InitLogger),
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

func InitLogger(cfg *config.Config) {
	logger.Init(cfg.LogLevel, !cfg.IsProduction())
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

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

	corsCfg := cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessions service.ExamSessionService,
	paperCtrl *paperctrl.PaperController,
	examCtrl *examctrl.ExamController,
) {
	api := router.Group("/api/v1")
	paperCtrl.RegisterRoutes(api)
	examCtrl.RegisterRoutes(api)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Paper2Exam server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			log.Info().Str("backend", cfg.Backend.BaseURL).Msg("Using exam generation backend")
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			sessions.Shutdown()
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
