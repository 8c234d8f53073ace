package server

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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/petedillo/fitness-api/internal/config"
	_ "github.com/petedillo/fitness-api/internal/docs"
	authhandler "github.com/petedillo/fitness-api/internal/handler/auth"
	exercisehandler "github.com/petedillo/fitness-api/internal/handler/exercise"
	"github.com/petedillo/fitness-api/internal/handler/health"
	"github.com/petedillo/fitness-api/internal/handler/middleware"
	userhandler "github.com/petedillo/fitness-api/internal/handler/user"
	workouthandler "github.com/petedillo/fitness-api/internal/handler/workout"
	loghandler "github.com/petedillo/fitness-api/internal/handler/workoutlog"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	authuc "github.com/petedillo/fitness-api/internal/usecase/auth"
	exerciseuc "github.com/petedillo/fitness-api/internal/usecase/exercise"
	useruc "github.com/petedillo/fitness-api/internal/usecase/user"
	workoutuc "github.com/petedillo/fitness-api/internal/usecase/workout"
	logsuc "github.com/petedillo/fitness-api/internal/usecase/workoutlog"
	jwtsvc "github.com/petedillo/fitness-api/pkg/jwt"
	"github.com/petedillo/fitness-api/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      repo.Store
	cfg        *config.Config

	jwtService      jwtsvc.Service
	authHandler     *authhandler.Handler
	userHandler     *userhandler.Handler
	exerciseHandler *exercisehandler.Handler
	workoutHandler  *workouthandler.Handler
	logHandler      *loghandler.Handler
}

// NewServer создает новый экземпляр сервера поверх выбранного хранилища.
func NewServer(cfg *config.Config, store repo.Store) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		router: gin.New(),
		store:  store,
		cfg:    cfg,
	}

	// Инициализируем зависимости один раз
	appLog := logger.Default()
	userService := useruc.NewService(store, appLog)
	s.jwtService = jwtsvc.NewService(&cfg.JWT)
	s.authHandler = authhandler.NewHandler(authuc.NewService(store.Users(), userService, s.jwtService, appLog))
	s.userHandler = userhandler.NewHandler(userService)
	s.exerciseHandler = exercisehandler.NewHandler(exerciseuc.NewService(store, appLog))
	s.workoutHandler = workouthandler.NewHandler(workoutuc.NewService(store, appLog))
	s.logHandler = loghandler.NewHandler(logsuc.NewService(store, appLog))

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.LoggerStructured())
	if s.cfg.Observability.MetricsEnabled {
		s.router.Use(middleware.Metrics())
	}
	s.router.Use(middleware.CORS(&s.cfg.CORS, s.cfg.AppEnv))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupObservabilityRoutes()

	v1 := s.router.Group("/api/v1")
	s.setupAuthRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(s.jwtService))
	s.setupUserRoutes(protected)
	s.setupExerciseRoutes(protected)
	s.setupWorkoutRoutes(protected)
	s.setupLogRoutes(protected)
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	healthHandler := health.NewHandler(s.store, s.cfg.Storage.Driver, s.cfg.AppEnv)
	// GET /health - базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db - проверка доступности хранилища.
	s.router.GET("/health/db", healthHandler.HealthDB)
}

func (s *Server) setupObservabilityRoutes() {
	if s.cfg.Observability.MetricsEnabled {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if s.cfg.Observability.SwaggerEnabled {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// setupAuthRoutes настраивает эндпоинты аутентификации и корневой роут API.
func (s *Server) setupAuthRoutes(v1 *gin.RouterGroup) {
	// GET /api/v1/ - корневой эндпоинт API v1, возвращает версию и базовую информацию.
	v1.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Fitness API v1",
			"version": "1.0.0",
		})
	})

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", s.authHandler.Register)
		authGroup.POST("/login", s.authHandler.Login)
		authGroup.POST("/refresh", s.authHandler.Refresh)
	}
}

func (s *Server) setupUserRoutes(g *gin.RouterGroup) {
	users := g.Group("/users")
	{
		users.GET("", s.userHandler.List)
		users.GET("/me", s.userHandler.GetMe)
		users.GET("/:id", s.userHandler.Get)
		users.PUT("/:id", s.userHandler.Update)
		// DELETE /api/v1/users/:id - каскадно удаляет тренировки и журнал пользователя.
		users.DELETE("/:id", s.userHandler.Delete)

		users.POST("/:id/workouts", s.workoutHandler.Create)
		users.GET("/:id/workouts", s.workoutHandler.ListByUser)
		users.GET("/:id/logs", s.logHandler.ListByUser)
	}
}

func (s *Server) setupExerciseRoutes(g *gin.RouterGroup) {
	exercises := g.Group("/exercises")
	{
		exercises.POST("", s.exerciseHandler.Create)
		exercises.GET("", s.exerciseHandler.List)
		exercises.GET("/:id", s.exerciseHandler.Get)
		exercises.PUT("/:id", s.exerciseHandler.Update)
		// DELETE /api/v1/exercises/:id - 409, пока упражнение входит в тренировки.
		exercises.DELETE("/:id", s.exerciseHandler.Delete)
	}
}

func (s *Server) setupWorkoutRoutes(g *gin.RouterGroup) {
	workouts := g.Group("/workouts")
	{
		workouts.GET("/:id", s.workoutHandler.Get)
		// PUT /api/v1/workouts/:id - переданный список exercises заменяет прежний целиком.
		workouts.PUT("/:id", s.workoutHandler.Update)
		workouts.DELETE("/:id", s.workoutHandler.Delete)
		workouts.POST("/:id/exercises", s.workoutHandler.AddExercise)
		workouts.GET("/:id/logs", s.logHandler.ListByWorkout)
	}

	entries := g.Group("/workout-exercises")
	{
		entries.PUT("/:id", s.workoutHandler.UpdateExercise)
		entries.DELETE("/:id", s.workoutHandler.DeleteExercise)
	}
}

func (s *Server) setupLogRoutes(g *gin.RouterGroup) {
	logs := g.Group("/logs")
	{
		logs.POST("", s.logHandler.Create)
		logs.GET("/:id", s.logHandler.Get)
		logs.PUT("/:id", s.logHandler.Update)
		logs.DELETE("/:id", s.logHandler.Delete)
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Канал для ошибок запуска сервера
	serverErr := make(chan error, 1)

	go func() {
		log.Printf("HTTP сервер запущен на %s (storage=%s)", address, s.cfg.Storage.Driver)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		log.Printf("Ошибка запуска сервера: %v", err)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
