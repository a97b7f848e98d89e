package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AyoPrez/sobuu-sub000/internal/infra/config"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/repo/credential"
)

const (
	appName = "sobuu"
	cmdName = "cli"
)

type Config struct {
	config.EnvConfig

	Log        logging.LoggerConfig `envPrefix:"LOG_"`
	Credential credential.Config    `envPrefix:"CREDENTIAL_"`
	Parse      http_.ClientConfig   `envPrefix:"PARSE_"`
	Metrics    MetricsConfig        `envPrefix:"METRICS_"`
}

// MetricsConfig controls where call metrics go when a command finishes.
type MetricsConfig struct {
	// Namespace prefixes all metric names
	Namespace string `env:"NAMESPACE" default:"sobuu"`

	// PushURL is a Prometheus Pushgateway; metrics are only pushed when set
	PushURL string `env:"PUSH_URL" default:""`
}

func main() {
	var (
		cfg Config

		configPrefix = strings.ToUpper(strings.Join([]string{appName, cmdName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, cmdName}, "."))
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Load(ctx, &cfg, configPrefix, ".env"); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func run(ctx context.Context, cfg Config, args []string) (err error) {
	log := logging.GetLogger("cmd.sobuu")

	defer func() {
		if err != nil {
			log.DebugContext(ctx, "command failed", "error", err)
		} else {
			log.DebugContext(ctx, "command done")
		}
	}()

	app, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("new app: %w", err)
	}

	defer func() {
		if closeErr := app.Close(ctx); closeErr != nil {
			log.WarnContext(ctx, "close app failed", "error", closeErr)
		}
	}()

	root := newRootCommand(app)
	root.SetArgs(args)

	return root.ExecuteContext(ctx) //nolint:wrapcheck
}
