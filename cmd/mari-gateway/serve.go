package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/marialabs/mari-gateway/internal/chat"
	"github.com/marialabs/mari-gateway/internal/commerce"
	"github.com/marialabs/mari-gateway/internal/compliance"
	"github.com/marialabs/mari-gateway/internal/config"
	"github.com/marialabs/mari-gateway/internal/conversation"
	"github.com/marialabs/mari-gateway/internal/handlers"
	"github.com/marialabs/mari-gateway/internal/healthcheck"
	"github.com/marialabs/mari-gateway/internal/intent"
	"github.com/marialabs/mari-gateway/internal/logger"
	"github.com/marialabs/mari-gateway/internal/media"
	"github.com/marialabs/mari-gateway/internal/payment"
	"github.com/marialabs/mari-gateway/internal/pipeline"
	"github.com/marialabs/mari-gateway/internal/server"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideChatClient,
			provideVision,
			provideTranscriber,
			provideFetcher,
			provideInterpreter,
			provideContextStore,
			provideClassifier,
			provideCart,
			providePayments,
			providePipeline,
			provideChecker,
			provideRefresher,
			compliance.NewFilter,
			provideMessageHandler,
			provideHealthHandler,
			providePingHandler,
			handlers.NewLogsHandler,
			provideServer,
		),
		fx.Invoke(
			startRefresher,
			startServer,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func callTimeout(cfg config.Config) time.Duration {
	return time.Duration(cfg.OpenAI.CallTimeoutSecs) * time.Second
}

func provideChatClient(log *slog.Logger, cfg config.Config) chat.Client {
	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY not set, classifier will return simulated replies")
	}
	return chat.NewOpenAIClient(chat.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
		Timeout: callTimeout(cfg),
		Logger:  log,
	})
}

func provideVision(log *slog.Logger, client chat.Client, cfg config.Config) media.VisionDescriber {
	return media.NewChatVision(log, client, cfg.OpenAI.VisionModel)
}

func provideTranscriber(log *slog.Logger, cfg config.Config) media.Transcriber {
	return media.NewWhisperTranscriber(media.WhisperConfig{
		APIBase: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.WhisperModel,
		Timeout: callTimeout(cfg),
		Logger:  log,
	})
}

func provideFetcher(cfg config.Config) media.Fetcher {
	return media.NewHTTPFetcher(callTimeout(cfg))
}

func provideInterpreter(log *slog.Logger, vision media.VisionDescriber, transcriber media.Transcriber, fetcher media.Fetcher) *media.Interpreter {
	return media.NewInterpreter(log, vision, transcriber, fetcher)
}

func provideContextStore() conversation.Store {
	return conversation.NewMemoryStore()
}

func provideClassifier(log *slog.Logger, client chat.Client, store conversation.Store, cfg config.Config) *intent.Classifier {
	return intent.NewClassifier(log, client, store, cfg.OpenAI.ChatModel)
}

func provideCart(log *slog.Logger, cfg config.Config) commerce.Client {
	return commerce.NewStoreClient(log, cfg.Commerce.StoreURL)
}

func providePayments(log *slog.Logger, cfg config.Config) payment.Client {
	return payment.NewGatewayClient(log, cfg.Payment.APIKey)
}

func providePipeline(log *slog.Logger, interpreter *media.Interpreter, classifier *intent.Classifier, cart commerce.Client, payments payment.Client, cfg config.Config) *pipeline.Service {
	return pipeline.NewService(log, interpreter, classifier, cart, payments, pipeline.Defaults{
		ProductID:     config.DefaultProductID,
		Quantity:      config.DefaultQuantity,
		PaymentAmount: cfg.Payment.DefaultAmount,
		PaymentMethod: cfg.Payment.DefaultMethod,
	})
}

func provideChecker(log *slog.Logger, cfg config.Config) *healthcheck.Checker {
	return healthcheck.NewChecker(log,
		healthcheck.NewConfigProbe("openai", healthcheck.StatusUp, func() string { return cfg.OpenAI.APIKey }),
		healthcheck.NewConfigProbe("woocommerce", healthcheck.StatusConfigured, func() string { return cfg.Commerce.StoreURL }),
		healthcheck.NewConfigProbe("payment_gateway", healthcheck.StatusConfigured, func() string { return cfg.Payment.APIKey }),
	)
}

func provideRefresher(log *slog.Logger, checker *healthcheck.Checker) (*healthcheck.Refresher, error) {
	return healthcheck.NewRefresher(log, checker, "@every 1m")
}

func provideMessageHandler(log *slog.Logger, service *pipeline.Service) *handlers.MessageHandler {
	return handlers.NewMessageHandler(log, service)
}

func provideHealthHandler(checker *healthcheck.Checker, cfg config.Config) *handlers.HealthHandler {
	return handlers.NewHealthHandler(checker, cfg.Service.Name, cfg.Service.Version, cfg.Service.Environment)
}

func providePingHandler(log *slog.Logger) *handlers.PingHandler {
	return handlers.NewPingHandler(log)
}

func provideServer(log *slog.Logger, cfg config.Config, filter *compliance.Filter, messageHandler *handlers.MessageHandler, healthHandler *handlers.HealthHandler, pingHandler *handlers.PingHandler, logsHandler *handlers.LogsHandler) *server.Server {
	return server.NewServer(log, cfg.Server, filter, messageHandler, healthHandler, pingHandler, logsHandler)
}

func startRefresher(lc fx.Lifecycle, refresher *healthcheck.Refresher) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			refresher.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			refresher.Stop()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *slog.Logger, cfg config.Config, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("server starting",
					slog.String("addr", cfg.Server.Addr),
					slog.String("environment", cfg.Service.Environment),
				)
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
