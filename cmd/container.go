package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tobyt50/PPALink-sub000/hiring/notification"
	"github.com/tobyt50/PPALink-sub000/hiring/notification/notificationinfra"
	"github.com/tobyt50/PPALink-sub000/hiring/notification/worker"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline/pipelineapi"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline/pipelineinfra"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline/pipelinesrv"
	"github.com/tobyt50/PPALink-sub000/pkg/iam/auth"
	"github.com/tobyt50/PPALink-sub000/pkg/logx"
	"github.com/tobyt50/PPALink-sub000/realtime/events"
	"github.com/tobyt50/PPALink-sub000/realtime/presence"
	"github.com/tobyt50/PPALink-sub000/realtime/realtimeapi"
)

const notificationQueueName = "notifications"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Auth
	TokenService   auth.TokenService
	AuthMiddleware *auth.TokenMiddleware

	// Realtime
	Presence  *presence.Registry
	Publisher *events.Publisher
	Gateway   *realtimeapi.Gateway

	// Notifications
	NotificationStore  notification.Store
	NotificationQueue  notification.Queue
	Notifier           *notification.Dispatcher
	NotificationWorker *worker.NotificationWorker

	// Pipeline
	PipelineService  *pipelinesrv.PipelineService
	PipelineHandlers *pipelineapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Token Service
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(jwtSecret, 24*time.Hour, "ppalink")
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	// --- Realtime ---
	c.Presence = presence.NewRegistry()
	c.Publisher = events.NewPublisher()
	c.Gateway = realtimeapi.NewGateway(c.Presence, c.TokenService)

	// --- Notifications ---
	c.NotificationStore = notificationinfra.NewPostgresStore(c.DB)
	c.NotificationQueue = notificationinfra.NewRedisQueue(c.Redis, notificationQueueName)
	c.Notifier = notification.NewDispatcher(c.NotificationStore, c.NotificationQueue)
	c.NotificationWorker = worker.NewNotificationWorker(c.NotificationStore, c.NotificationQueue, 2)

	// --- Pipeline ---
	uow := pipelineinfra.NewPostgresUnitOfWork(c.DB)
	reads := pipelineinfra.NewPostgresReadRepository(c.DB)
	directory := pipelineinfra.NewPostgresAgencyDirectory(c.DB)

	c.PipelineService = pipelinesrv.NewPipelineService(
		uow,
		reads,
		directory,
		c.Presence,
		c.Publisher,
		c.Notifier,
	)
	c.PipelineHandlers = pipelineapi.NewHandlers(c.PipelineService)
}
