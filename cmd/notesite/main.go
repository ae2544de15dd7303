package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/preview"
	"git.home.luguber.info/inful/notesite/internal/render"
	"git.home.luguber.info/inful/notesite/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"notesite.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Override the configured output directory"`
	} `cmd:"" help:"Build the site from the vault"`

	Preview struct {
		Addr string `short:"a" help:"Listen address" default:"localhost:8080"`
	} `cmd:"" help:"Serve the site locally and rebuild on vault changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg, err := loadConfig()
		if err != nil {
			fatal("failed to load configuration", err)
		}
		if CLI.Build.Output != "" {
			cfg.Output = CLI.Build.Output
		}
		if err := runBuild(cfg); err != nil {
			fatal("build failed", err)
		}
	case "preview":
		cfg, err := loadConfig()
		if err != nil {
			fatal("failed to load configuration", err)
		}
		if err := runPreview(cfg, CLI.Preview.Addr); err != nil {
			fatal("preview failed", err)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			fatal("init failed", err)
		}
		slog.Info("configuration written", logfields.Path(CLI.Config))
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(CLI.Config)
}

func runBuild(cfg *config.Config) error {
	renderer, err := render.New(cfg.TemplateDir)
	if err != nil {
		return err
	}
	return site.NewBuilder(afero.NewOsFs(), cfg, renderer).Build()
}

func runPreview(cfg *config.Config, addr string) error {
	renderer, err := render.New(cfg.TemplateDir)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	builder := site.NewBuilder(afero.NewOsFs(), cfg, renderer, site.WithRecorder(rec))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.New(cfg, builder.Build, preview.WithMetricsHandler(metrics.HTTPHandler(reg)))
	return srv.Run(ctx, addr)
}

func fatal(msg string, err error) {
	slog.Error(msg, logfields.Error(err))
	os.Exit(1)
}
