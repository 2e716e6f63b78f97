package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"engagesurvey/internal/cache"
	"engagesurvey/internal/config"
	"engagesurvey/internal/content"
	"engagesurvey/internal/repository"
	"engagesurvey/internal/service"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// App holds the connected stores and the services built on them
type App struct {
	Config *config.Config
	Study  *config.StudyConfig

	Mongo *mongo.Client
	Redis *redis.Client

	Content   content.Repository
	Responses repository.ResponseRepo

	ResponseService *service.ResponseService
	SamplerService  *service.SamplerService
	SessionService  *service.SessionService
	ReportService   *service.ReportService
	AuthService     *service.AuthService
}

// New connects to MongoDB and Redis and wires every service
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	study, err := config.LoadStudy(cfg.StudyFile)
	if err != nil {
		return nil, err
	}
	log.Printf("Study: batch=%d sampling=%s ratings=%d", study.BatchSize, study.Sampling, len(study.Ratings))

	if info, err := os.Stat(cfg.ContentRoot); err != nil || !info.IsDir() {
		log.Printf("Warning: content root %s is not a readable directory; sessions will fail until it is", cfg.ContentRoot)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	log.Println("Connected to MongoDB")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		mongoClient.Disconnect(ctx)
		rdb.Close()
		return nil, fmt.Errorf("ping Redis: %w", err)
	}
	log.Println("Connected to Redis")

	responseRepo := repository.NewResponseRepo(mongoClient.Database(cfg.MongoDatabase))
	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("Warning: could not create indexes: %v", err)
	}

	contentRepo := content.NewRepository(os.DirFS(cfg.ContentRoot), content.Options{
		FacePrefix:      study.FacePrefix,
		ImageExtensions: study.ImageExtensions,
		ExcludedPages:   study.ExcludedPages,
	})

	authSvc, err := service.NewAuthService(cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		mongoClient.Disconnect(ctx)
		rdb.Close()
		return nil, fmt.Errorf("init auth: %w", err)
	}

	responseSvc := service.NewResponseService(responseRepo, cache.NewAnsweredCache(rdb, cfg.AnsweredTTL))
	samplerSvc := service.NewSamplerService(contentRepo, responseSvc, study)
	sessionSvc := service.NewSessionService(samplerSvc, responseSvc, cache.NewSessionCache(rdb, cfg.SessionTTL), study.Ratings)
	reportSvc := service.NewReportService(responseSvc, contentRepo)

	return &App{
		Config:          cfg,
		Study:           study,
		Mongo:           mongoClient,
		Redis:           rdb,
		Content:         contentRepo,
		Responses:       responseRepo,
		ResponseService: responseSvc,
		SamplerService:  samplerSvc,
		SessionService:  sessionSvc,
		ReportService:   reportSvc,
		AuthService:     authSvc,
	}, nil
}

// Close disconnects from both stores
func (a *App) Close(ctx context.Context) {
	if err := a.Mongo.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
	if err := a.Redis.Close(); err != nil {
		log.Printf("Redis close: %v", err)
	}
}
