package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ysfmrbt/skillwise/internal/config"
	s3infra "github.com/ysfmrbt/skillwise/internal/infra/s3"
	"github.com/ysfmrbt/skillwise/internal/jobs/cleanup"
	pgrepo "github.com/ysfmrbt/skillwise/internal/repo/postgres"
	redrepo "github.com/ysfmrbt/skillwise/internal/repo/redis"
	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
	categoriessvc "github.com/ysfmrbt/skillwise/internal/services/categories"
	coursessvc "github.com/ysfmrbt/skillwise/internal/services/courses"
	enrollmentssvc "github.com/ysfmrbt/skillwise/internal/services/enrollments"
	feedbacksvc "github.com/ysfmrbt/skillwise/internal/services/feedback"
	lessonssvc "github.com/ysfmrbt/skillwise/internal/services/lessons"
	mediasvc "github.com/ysfmrbt/skillwise/internal/services/media"
	userssvc "github.com/ysfmrbt/skillwise/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	refreshRepo := redrepo.NewRefreshRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	categoryRepo := pgrepo.NewCategoryRepo(pool)
	courseRepo := pgrepo.NewCourseRepo(pool)
	lessonRepo := pgrepo.NewLessonRepo(pool)
	enrollmentRepo := pgrepo.NewEnrollmentRepo(pool)
	feedbackRepo := pgrepo.NewFeedbackRepo(pool)
	materialRepo := pgrepo.NewMaterialRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	passwordHasher := authsvc.NewPasswordHasher(cfg.Auth.BcryptCost)
	authService := authsvc.NewService(userRepo, refreshRepo, jwtManager, passwordHasher, cfg.Auth.RefreshTTL, log)
	userService := userssvc.NewService(userRepo, passwordHasher)
	categoryService := categoriessvc.NewService(categoryRepo)
	courseService := coursessvc.NewService(courseRepo, userRepo, categoryRepo)
	lessonService := lessonssvc.NewService(lessonRepo, courseRepo)
	enrollmentService := enrollmentssvc.NewService(enrollmentRepo, userRepo, courseRepo)
	feedbackService := feedbacksvc.NewService(feedbackRepo, userRepo, courseRepo)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(materialRepo, mediaStorage, courseRepo)

	cleanupJob := cleanup.New(refreshRepo, 24*time.Hour, log)
	go func() {
		if err := cleanupJob.RunEvery(ctx, cfg.Auth.CleanupInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("refresh cleanup loop stopped", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:       authService,
		UserService:       userService,
		CategoryService:   categoryService,
		CourseService:     courseService,
		LessonService:     lessonService,
		EnrollmentService: enrollmentService,
		FeedbackService:   feedbackService,
		MediaService:      mediaService,
		Logger:            log,
		Config:            cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
