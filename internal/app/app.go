package app

import (
	"CourseFlow/internal/app/server"
	"CourseFlow/internal/config"
	"CourseFlow/internal/delivery/http"
	"CourseFlow/internal/service"
	"CourseFlow/internal/service/auth"
	"CourseFlow/internal/service/course"
	"CourseFlow/internal/service/lesson"
	"CourseFlow/internal/service/lesson/progress"
	"CourseFlow/internal/service/quiz"
	"CourseFlow/internal/service/video"
	"CourseFlow/internal/storage/elastic"
	"CourseFlow/internal/storage/minio_storage"
	"CourseFlow/internal/storage/postgres"
	"CourseFlow/internal/storage/redis"
	"CourseFlow/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func Run(cfg *config.Config) {

	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx := context.Background()

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.FatalErr("error connecting to redis", err)
	}
	defer redisClient.Close()

	minioStore, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	videoStorage, err := minio_storage.NewVideoStorage(minioStore, cfg.Minio.VideoBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing video bucket", err)
	}

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(ctx); err != nil {
		log.FatalErr("error preparing search index", err)
	}

	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	userRepo := postgres.NewUserPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)
	quizRepo := postgres.NewQuizPostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	urlCache := redis.NewVideoURLCache(redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "//", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)
	courseService := course.NewCourseService(log, courseRepo, enrollmentRepo, searchRepo)
	if err := courseService.ReindexCatalog(ctx); err != nil {
		log.FatalErr("error reindexing catalog", err)
	}
	lessonService := lesson.NewLessonService(log, lessonRepo, progressRepo, courseRepo, enrollmentRepo)
	progressService := progress.NewProgressService(log, lessonRepo, progressRepo, enrollmentRepo)
	quizService := quiz.NewQuizService(log, quizRepo, lessonRepo, enrollmentRepo, cfg.Quiz.PassingScore)
	videoService := video.NewVideoService(log, lessonRepo, enrollmentRepo, videoStorage, urlCache, cfg.Minio.PresignTTL)

	u := service.Collection{
		AuthService:     authService,
		CourseService:   courseService,
		LessonService:   lessonService,
		ProgressService: progressService,
		QuizService:     quizService,
		VideoService:    videoService,
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
