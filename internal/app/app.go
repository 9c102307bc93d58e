package app

import (
	"context"
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/markdown"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/configwatcher"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	// 未配置或连接失败时为 nil，通知与内容缓存随之降级
	Redis *redis.Client

	services        *services
	rateLimiter     *security.RateLimiter
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	enrollment  *repository.EnrollmentRepository
	material    *repository.StudyMaterialRepository
	assessment  *repository.AssessmentRepository
	progress    *repository.ProgressRepository
	certificate *repository.CertificateRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	content     *service.ContentService
	notifier    service.Notifier
	progress    *service.ProgressService
	learning    *service.LearningService
	course      *service.CourseService
	material    *service.MaterialService
	assessment  *service.AssessmentService
	certificate *service.CertificateService
}

type controllers struct {
	auth         *controller.AuthController
	health       *controller.HealthController
	course       *controller.CourseController
	material     *controller.MaterialController
	learningPath *controller.LearningPathController
	content      *controller.ContentController
	assessment   *controller.AssessmentController
	certificate  *controller.CertificateController
	notification *controller.NotificationController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		material:    repository.NewStudyMaterialRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		progress:    repository.NewProgressRepository(db),
		certificate: repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	if rdb != nil {
		s.notifier = service.NewRedisNotifier(rdb)
	} else {
		s.notifier = service.LogNotifier{}
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)

	var loaderOpts []markdown.LoaderOption
	if cfg.Content.AllowPrivateHosts {
		loaderOpts = append(loaderOpts, markdown.AllowPrivateHosts())
	}
	loader := markdown.NewLoader(cfg.Content.FetchTimeout, cfg.Content.MinLength, loaderOpts...)
	s.content = service.NewContentService(loader, rdb, cfg.Content.CacheTTL)

	s.progress = service.NewProgressService(repos.progress, repos.material, repos.enrollment, s.notifier)
	s.learning = service.NewLearningService(
		repos.course,
		repos.material,
		repos.assessment,
		repos.progress,
		repos.enrollment,
		s.progress,
		cfg.LearningPath.BlockSize,
	)
	s.course = service.NewCourseService(repos.course, repos.enrollment)
	s.material = service.NewMaterialService(repos.course, repos.material, s.storage, s.content)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.course, s.learning)
	s.certificate = service.NewCertificateService(repos.certificate, repos.assessment, s.learning, s.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	var drainer controller.NotificationDrainer
	if n, ok := s.notifier.(*service.RedisNotifier); ok {
		drainer = n
	}

	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		health:       controller.NewHealthController(db, rdb),
		course:       controller.NewCourseController(s.course),
		material:     controller.NewMaterialController(s.material),
		learningPath: controller.NewLearningPathController(s.learning, s.progress),
		content:      controller.NewContentController(s.content),
		assessment:   controller.NewAssessmentController(s.assessment),
		certificate:  controller.NewCertificateController(s.certificate),
		notification: controller.NewNotificationController(drainer),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders 配置文件变更后可在线生效的项
func (a *App) registerReloaders() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.rateLimiter.Update(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.learning.SetBlockSize(cfg.LearningPath.BlockSize)
	})
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// New 使用已建立的连接组装应用，rdb 可为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		rateLimiter: security.NewRateLimiter(
			cfg.RateLimit.MaxRequests,
			time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerReloaders()
	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// 非 release 模式默认迁移，release 模式需显式 -migrate
	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, notifications and content cache disabled", zap.Error(err))
		rdb = nil
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb)
	app.tracerProvider = tp
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if _, err := os.Stat(configFile); err == nil {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, filepath.Clean(configFile), a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopWatch()
	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
