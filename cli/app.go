package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"

	"poshchat/config"
	"poshchat/services"
)

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	chat     *services.ChatService
}

// loadConfig reads .env, then defaults, file and environment through v.
func loadConfig(v *viper.Viper, file string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(v, file)
}

// newApp resolves the provider key once and wires the relay.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer, getter config.ParamGetter) (*app, error) {
	logger := config.NewLogger(cfg.Log, logOut)

	if getter == nil && cfg.Provider.APIKey == "" && cfg.Secrets.SSMParameter != "" {
		ssmGetter, err := config.NewSSMGetterFromConfig(ctx, cfg.Secrets)
		if err != nil {
			logger.Warn("ssm client unavailable", "error", err)
		} else {
			getter = ssmGetter
		}
	}
	apiKey := config.ResolveAPIKey(ctx, cfg, getter, logger)
	if apiKey == "" {
		logger.Warn("provider key not configured; chat requests will fail", "env", config.APIKeyEnv)
	}

	completer, err := services.NewCompleter(cfg.Provider.Transport, services.ProviderOptions{
		APIKey:  apiKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init completer: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	opts := []services.ChatServiceOption{services.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, services.WithRecorder(services.NewMetrics(a.registry)))
	}

	a.chat, err = services.NewChatService(apiKey, completer, opts...)
	if err != nil {
		return nil, fmt.Errorf("init chat service: %w", err)
	}
	return a, nil
}
