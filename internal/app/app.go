package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/cricket-league/external/contentstack"
	"github.com/riskibarqy/cricket-league/external/jobqueue"
	"github.com/riskibarqy/cricket-league/external/newsdata"
	"github.com/riskibarqy/cricket-league/external/resend"
	"github.com/riskibarqy/cricket-league/external/youtube"
	"github.com/riskibarqy/cricket-league/internal/config"
	"github.com/riskibarqy/cricket-league/internal/domain/preference"
	"github.com/riskibarqy/cricket-league/internal/domain/registration"
	csrepo "github.com/riskibarqy/cricket-league/internal/infrastructure/repository/contentstack"
	"github.com/riskibarqy/cricket-league/internal/infrastructure/repository/memory"
	redisrepo "github.com/riskibarqy/cricket-league/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/cricket-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

// App is the assembled API process. Close releases what New opened.
type App struct {
	Server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	app := &App{}

	delivery := contentstack.NewDeliveryClient(contentstack.DeliveryConfig{
		BaseURL:        cfg.Contentstack.DeliveryBaseURL,
		Region:         cfg.Contentstack.Region,
		APIKey:         cfg.Contentstack.APIKey,
		DeliveryToken:  cfg.Contentstack.DeliveryToken,
		Environment:    cfg.Contentstack.Environment,
		Locale:         cfg.Contentstack.Locale,
		Timeout:        cfg.Contentstack.Timeout,
		Logger:         logger,
		CircuitBreaker: cfg.Contentstack.Circuit,
	})
	if !delivery.Configured() {
		logger.Info("contentstack delivery not configured, pages render fallback content")
	}

	var news usecase.NewsSource
	if cfg.NewsData.APIKey != "" {
		news = newsdata.NewClient(newsdata.ClientConfig{
			BaseURL:        cfg.NewsData.BaseURL,
			APIKey:         cfg.NewsData.APIKey,
			Query:          cfg.NewsData.Query,
			Language:       cfg.NewsData.Language,
			PageSize:       cfg.NewsData.PageSize,
			Timeout:        cfg.NewsData.Timeout,
			Logger:         logger,
			CircuitBreaker: cfg.NewsData.Circuit,
		})
	}

	var stats usecase.VideoStatsSource
	if cfg.YouTube.APIKey != "" {
		client, err := youtube.NewClient(ctx, youtube.ClientConfig{
			APIKey:  cfg.YouTube.APIKey,
			Timeout: cfg.YouTube.Timeout,
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("youtube client unavailable, videos keep cms stats", "error", err)
		} else {
			stats = client
		}
	}

	var repo registration.Repository
	if cfg.Contentstack.ManagementConfigured() {
		management := contentstack.NewManagementClient(contentstack.ManagementConfig{
			BaseURL:         cfg.Contentstack.ManagementBaseURL,
			Region:          cfg.Contentstack.Region,
			APIKey:          cfg.Contentstack.APIKey,
			ManagementToken: cfg.Contentstack.ManagementToken,
			Environment:     cfg.Contentstack.Environment,
			Locale:          cfg.Contentstack.Locale,
			Timeout:         cfg.Contentstack.Timeout,
			Logger:          logger,
			CircuitBreaker:  cfg.Contentstack.Circuit,
		})
		repo = csrepo.NewRegistrationRepository(management, cfg.Contentstack.PublishRegistrations, logger)
	} else {
		logger.Warn("contentstack management token missing, registrations run in demo mode")
	}

	var jobs usecase.JobEnqueuer
	if cfg.QStash.Enabled {
		jobs = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:        cfg.QStash.BaseURL,
			Token:          cfg.QStash.Token,
			TargetBaseURL:  cfg.QStash.TargetBaseURL,
			Retries:        cfg.QStash.Retries,
			WebhookSecret:  cfg.WebhookSecret,
			CircuitBreaker: cfg.QStash.Circuit,
			Logger:         logger,
		})
	}

	var sender usecase.EmailSender
	if cfg.Resend.APIKey != "" {
		sender = resend.NewClient(resend.ClientConfig{
			BaseURL: cfg.Resend.BaseURL,
			APIKey:  cfg.Resend.APIKey,
			Timeout: cfg.Resend.Timeout,
			Logger:  logger,
		})
	}

	store, err := app.preferenceStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	validate := usecase.NewValidator()
	contentSvc := usecase.NewContentService(delivery, news, stats, usecase.ContentServiceConfig{
		Locale:       cfg.Contentstack.Locale,
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
		Logger:       logger,
	})
	registrationSvc := usecase.NewRegistrationService(repo, jobs, usecase.RegistrationServiceConfig{
		Logger:    logger,
		Validator: validate,
	})
	notificationSvc := usecase.NewNotificationService(sender, usecase.NotificationServiceConfig{
		From:       cfg.Resend.From,
		LeagueName: cfg.LeagueName,
		Logger:     logger,
	})
	preferenceSvc := usecase.NewPreferenceService(store, validate)

	handler := httpapi.NewHandler(contentSvc, registrationSvc, notificationSvc, preferenceSvc, logger, cfg.AppEnv != config.EnvProd)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		WebhookSecret:      cfg.WebhookSecret,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

func (a *App) preferenceStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (preference.Store, error) {
	if cfg.Redis.URL == "" {
		logger.Info("redis not configured, preferences are kept in memory")
		return memory.NewPreferenceStore(), nil
	}

	client, err := redisrepo.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("connect preference store: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	logger.Info("preferences stored in redis", "ttl", cfg.Redis.PreferenceTTL.String())
	return redisrepo.NewPreferenceStore(client, cfg.Redis.PreferenceTTL), nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
