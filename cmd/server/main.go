package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/internal/server"
	"github.com/iota-uz/boxoffice/modules"
	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/logging"
	"github.com/iota-uz/boxoffice/pkg/metrics"
	"github.com/iota-uz/boxoffice/pkg/session"
)

const sessionSweepInterval = time.Minute

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configuration.Use()); err != nil {
		configuration.Use().Unload()
		log.Fatalf("boxoffice: %v", err)
	}
}

func run(ctx context.Context, conf *configuration.Configuration) error {
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer cleanup()
		logger.WithField("tempo", conf.OpenTelemetry.TempoURL).Info("tracing enabled")
	}

	// One backend client per browser session keeps cookie jars apart.
	sessions := session.NewStore(conf.SessionDuration, func() (*apiclient.Client, error) {
		return apiclient.FromConfig(conf)
	})
	go sessions.Run(ctx, sessionSweepInterval, logger.WithField("component", "sessions"))

	app := application.New(&application.ApplicationOptions{
		EventBus:           eventbus.NewEventPublisher(logger),
		Sessions:           sessions,
		Logger:             logger,
		Bundle:             application.LoadBundle(),
		SupportedLanguages: conf.SupportedLanguages,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		return errors.Wrap(err, "load modules")
	}
	app.RegisterNavItems(modules.NavLinks...)
	app.RegisterControllers(controllers.NewStaticFilesController(app.HashFsAssets()))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewController(conf.Prometheus.Path, nil))
	}

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	})
	if err != nil {
		return errors.Wrap(err, "build server")
	}
	logger.WithFields(logrus.Fields{
		"origin":  conf.Origin,
		"backend": conf.Backend.URL,
	}).Info("listening on " + conf.SocketAddress)
	return srv.Serve(ctx, conf.SocketAddress)
}
