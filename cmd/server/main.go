package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katakuxiko/guidance/internal/api"
	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/logger"
	"github.com/katakuxiko/guidance/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:           "guidance-server",
		Short:         "Ask Wikipedia, OpenAI and Gemini at once and merge the answers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "optional config file (yaml, toml, json)")
	flags.String("addr", "", "listen address, overrides SERVER_ADDR")
	flags.String("frontend", "", "frontend bundle directory, overrides FRONTEND_DIR")
	flags.String("log-level", "", "log level, overrides LOG_LEVEL")
	_ = v.BindPFlag("SERVER_ADDR", flags.Lookup("addr"))
	_ = v.BindPFlag("FRONTEND_DIR", flags.Lookup("frontend"))
	_ = v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, OpenAI calls will fail")
	}
	if cfg.GeminiKey == "" {
		log.Warn("GEMINI_API_KEY is not set, Gemini calls will fail")
	}

	// services
	wiki := service.NewWikipediaClient(cfg)
	oai := service.NewLLMClient(cfg)
	gem := service.NewGeminiClient(ctx, cfg)
	defer gem.Close()
	agg := service.NewAggregatorService(wiki, oai, gem, log.Named("aggregator"))

	// api
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.RegisterRoutes(app, agg, api.NewFrontend(cfg.FrontendDir), log.Named("http"))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		_ = app.Shutdown()
	}()

	log.Info("🚀 Server started", zap.String("addr", cfg.ServerAddr), zap.String("frontend", cfg.FrontendDir))
	return app.Listen(cfg.ServerAddr)
}
