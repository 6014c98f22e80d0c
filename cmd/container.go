package main

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/talentgate/portal/finaid/bursary/bursaryapi"
	"github.com/talentgate/portal/finaid/bursary/bursaryinfra"
	"github.com/talentgate/portal/finaid/bursary/bursarysrv"
	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/notification/notificationapi"
	"github.com/talentgate/portal/notification/notificationinfra"
	"github.com/talentgate/portal/notification/notificationsrv"
	"github.com/talentgate/portal/pkg/config"
	"github.com/talentgate/portal/pkg/fsx"
	"github.com/talentgate/portal/pkg/fsx/fsxs3"
	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/pkg/logx"
	"github.com/talentgate/portal/recruitment/application/applicationapi"
	"github.com/talentgate/portal/recruitment/application/applicationinfra"
	"github.com/talentgate/portal/recruitment/application/applicationsrv"
	"github.com/talentgate/portal/recruitment/interview/interviewapi"
	"github.com/talentgate/portal/recruitment/interview/interviewinfra"
	"github.com/talentgate/portal/recruitment/interview/interviewsrv"
	"github.com/talentgate/portal/recruitment/subscriber/subscriberapi"
	"github.com/talentgate/portal/recruitment/subscriber/subscriberinfra"
	"github.com/talentgate/portal/recruitment/subscriber/subscribersrv"
	"github.com/talentgate/portal/recruitment/vacancy/vacancyapi"
	"github.com/talentgate/portal/recruitment/vacancy/vacancyinfra"
	"github.com/talentgate/portal/recruitment/vacancy/vacancysrv"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	SESClient  *ses.Client

	// Eventing
	Bus    *notification.Bus
	Queue  *notificationinfra.RedisQueue
	Hub    *notificationinfra.WebSocketHub
	Worker *notificationsrv.DeliveryWorker

	// Domain Services
	VacancyService      *vacancysrv.VacancyService
	ApplicationService  *applicationsrv.ApplicationService
	InterviewService    *interviewsrv.InterviewService
	SubscriberService   *subscribersrv.SubscriberService
	BursaryService      *bursarysrv.BursaryService
	NotificationService *notificationsrv.NotificationService

	// API Handlers
	VacancyHandlers      *vacancyapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	InterviewHandlers    *interviewapi.Handlers
	SubscriberHandlers   *subscriberapi.Handlers
	BursaryHandlers      *bursaryapi.Handlers
	NotificationHandlers *notificationapi.Handlers

	// Auth
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		logx.Fatalf("failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("failed to connect to Redis: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logx.Fatalf("unable to load AWS SDK config: %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.SESClient = ses.NewFromConfig(awsCfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.AWS.Bucket, "uploads")

	c.TokenService = auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	cfg := c.Config

	// Repositories
	vacancyRepo := vacancyinfra.NewPostgresVacancyRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	interviewRepo := interviewinfra.NewPostgresInterviewRepository(c.DB)
	subscriberRepo := subscriberinfra.NewPostgresSubscriberRepository(c.DB)
	bursaryRepo := bursaryinfra.NewPostgresBursaryRepository(c.DB)
	notificationStore := notificationinfra.NewPostgresNotificationStore(c.DB)

	// Eventing and delivery
	c.Bus = notification.NewBus(256)
	c.Queue = notificationinfra.NewRedisQueue(c.Redis, cfg.Worker.QueueName)
	c.Hub = notificationinfra.NewWebSocketHub(c.TokenService)

	templates := notification.Templates{
		Organisation: cfg.Portal.Organisation,
		BaseURL:      cfg.Portal.BaseURL,
	}

	dispatcher := notificationsrv.NewDispatcher(c.Queue, subscriberRepo, notificationStore, templates, cfg.Worker.MaxAttempts)
	c.Bus.Subscribe(dispatcher.Handle)

	emailSender := notificationinfra.NewSESEmailSender(c.SESClient, cfg.Email.FromAddress)
	smsSender := notificationinfra.NewSMSGateway(cfg.SMS.URI, cfg.SMS.Username, cfg.SMS.Password, cfg.SMS.Timeout)
	c.Worker = notificationsrv.NewDeliveryWorker(
		c.Queue,
		emailSender,
		smsSender,
		c.Hub,
		cfg.Worker.Count,
		cfg.Worker.DequeueWait,
		cfg.Worker.RetryBackoff,
	)

	// Domain services
	c.VacancyService = vacancysrv.NewVacancyService(vacancyRepo, c.Bus)
	c.InterviewService = interviewsrv.NewInterviewService(interviewRepo, applicationRepo, vacancyRepo, c.Bus)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		vacancyRepo,
		c.FileSystem,
		&interviewSchedulerAdapter{interviews: c.InterviewService},
		c.Bus,
	)
	c.SubscriberService = subscribersrv.NewSubscriberService(subscriberRepo)
	c.BursaryService = bursarysrv.NewBursaryService(bursaryRepo, c.FileSystem, c.Bus)
	c.NotificationService = notificationsrv.NewNotificationService(notificationStore)

	// Handlers
	c.VacancyHandlers = vacancyapi.NewHandlers(c.VacancyService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService)
	c.SubscriberHandlers = subscriberapi.NewHandlers(c.SubscriberService)
	c.BursaryHandlers = bursaryapi.NewHandlers(c.BursaryService)
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService)
}

// Close releases the container's connections.
func (c *Container) Close() {
	c.Bus.Close()
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("close redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("close database: %v", err)
	}
}

// interviewSchedulerAdapter bridges the interview service into the narrow
// scheduling port the application service depends on.
type interviewSchedulerAdapter struct {
	interviews *interviewsrv.InterviewService
}

func (a *interviewSchedulerAdapter) ScheduleForApplication(ctx context.Context, applicationID kernel.ApplicationID) (*applicationsrv.ScheduledInterview, error) {
	scheduled, err := a.interviews.ScheduleForApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return &applicationsrv.ScheduledInterview{
		ID:               scheduled.ID,
		ScheduleDatetime: scheduled.ScheduleDatetime,
	}, nil
}
