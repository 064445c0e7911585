package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigPath      = "config.toml"
	DefaultHTTPAddr        = ":3000"
	DefaultServiceName     = "mari-agent-microservice"
	DefaultServiceVersion  = "1.0.0"
	DefaultEnvironment     = "development"
	DefaultBodyLimit       = "5M"
	DefaultRateLimit       = 200
	DefaultRateWindowMins  = 15
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultChatModel       = "gpt-4o-mini"
	DefaultVisionModel     = "gpt-4o-mini"
	DefaultWhisperModel    = "whisper-1"
	DefaultCallTimeoutSecs = 30
	DefaultPaymentAmount   = "150.00"
	DefaultProductID       = "123"
	DefaultQuantity        = 1
	DefaultPaymentMethod   = "PIX"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Service  ServiceConfig  `toml:"service"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Commerce CommerceConfig `toml:"commerce"`
	Payment  PaymentConfig  `toml:"payment"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr           string `toml:"addr"`
	BodyLimit      string `toml:"body_limit"`
	RateLimit      int    `toml:"rate_limit"`
	RateWindowMins int    `toml:"rate_window_minutes"`
}

type ServiceConfig struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Environment string `toml:"environment"`
}

type OpenAIConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	ChatModel       string `toml:"chat_model"`
	VisionModel     string `toml:"vision_model"`
	WhisperModel    string `toml:"whisper_model"`
	CallTimeoutSecs int    `toml:"call_timeout_seconds"`
}

type CommerceConfig struct {
	StoreURL string `toml:"store_url"`
}

type PaymentConfig struct {
	APIKey        string `toml:"api_key"`
	DefaultAmount string `toml:"default_amount"`
	DefaultMethod string `toml:"default_method"`
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:           DefaultHTTPAddr,
			BodyLimit:      DefaultBodyLimit,
			RateLimit:      DefaultRateLimit,
			RateWindowMins: DefaultRateWindowMins,
		},
		Service: ServiceConfig{
			Name:        DefaultServiceName,
			Version:     DefaultServiceVersion,
			Environment: DefaultEnvironment,
		},
		OpenAI: OpenAIConfig{
			BaseURL:         DefaultOpenAIBaseURL,
			ChatModel:       DefaultChatModel,
			VisionModel:     DefaultVisionModel,
			WhisperModel:    DefaultWhisperModel,
			CallTimeoutSecs: DefaultCallTimeoutSecs,
		},
		Payment: PaymentConfig{
			DefaultAmount: DefaultPaymentAmount,
			DefaultMethod: DefaultPaymentMethod,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	// Deployments set secrets and the listen port through the environment,
	// so env vars win over file values.
	applyEnv(&cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Service.Environment = v
	}
	if v := os.Getenv("SERVICE_VERSION"); v != "" {
		cfg.Service.Version = v
	}
	if v := os.Getenv("WOO_STORE_URL"); v != "" {
		cfg.Commerce.StoreURL = v
	}
	if v := os.Getenv("PAYMENT_API_KEY"); v != "" {
		cfg.Payment.APIKey = v
	}
}
