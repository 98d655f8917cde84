package app

import (
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/controller"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/service"
	"class_connect_backend/pkg/configwatcher"
	"class_connect_backend/pkg/database"
	"class_connect_backend/pkg/logger"
	"class_connect_backend/pkg/monitoring"
	"class_connect_backend/pkg/security"
	"class_connect_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	teacher        *repository.TeacherRepository
	student        *repository.StudentRepository
	course         *repository.CourseRepository
	survey         *repository.SurveyRepository
	session        *repository.SessionRepository
	submission     *repository.SubmissionRepository
	profile        *repository.ProfileRepository
	recommendation *repository.RecommendationRepository
	activity       *repository.ActivityRepository
}

type services struct {
	auth           *service.AuthService
	course         *service.CourseService
	survey         *service.SurveyService
	session        *service.SessionService
	activity       *service.ActivityService
	recommendation *service.RecommendationService
	submission     *service.SubmissionService
	ai             *service.AIService
	maintenance    *service.MaintenanceService
}

type controllers struct {
	auth           *controller.AuthController
	course         *controller.CourseController
	survey         *controller.SurveyController
	session        *controller.SessionController
	activity       *controller.ActivityController
	recommendation *controller.RecommendationController
	public         *controller.PublicController
	maintenance    *controller.MaintenanceController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		teacher:        repository.NewTeacherRepository(db),
		student:        repository.NewStudentRepository(db),
		course:         repository.NewCourseRepository(db),
		survey:         repository.NewSurveyRepository(db),
		session:        repository.NewSessionRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		profile:        repository.NewProfileRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		activity:       repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.teacher, repos.student, cfg)
	s.survey = service.NewSurveyService(repos.survey)
	s.course = service.NewCourseService(repos.course, repos.survey)
	s.session = service.NewSessionService(repos.session, repos.course, repos.survey, repos.submission, rdb)
	s.activity = service.NewActivityService(repos.activity, repos.course)
	s.recommendation = service.NewRecommendationService(repos.recommendation, repos.activity)
	s.submission = service.NewSubmissionService(db, repos.session, repos.course, repos.submission, repos.profile, s.recommendation)
	s.ai = service.NewAIService(cfg.AI)
	s.maintenance = service.NewMaintenanceService(db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		course:         controller.NewCourseController(s.course, s.submission),
		survey:         controller.NewSurveyController(s.survey),
		session:        controller.NewSessionController(s.session),
		activity:       controller.NewActivityController(s.activity),
		recommendation: controller.NewRecommendationController(s.course, s.activity, s.recommendation, s.ai),
		public:         controller.NewPublicController(s.session, s.course, s.auth, s.submission),
		maintenance:    controller.NewMaintenanceController(s.maintenance, a.Config),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Log.Info("Database migration completed")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 仅用于加入令牌缓存，失败时降级为直查数据库
		logger.Log.Warn("Failed to initialize redis, join token cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("class-connect", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
