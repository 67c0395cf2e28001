package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/routing"
	"github.com/iota-uz/boxoffice/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Entrypoint    string
	AllowlistPath string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	rules, err := routing.LoadAllowlist(options.AllowlistPath, options.Entrypoint)
	if err != nil {
		return nil, err
	}
	classifier := routing.NewClassifier(rules)

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.Classifier = classifier

	// Root span for each request is created by WithLogger.
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, classifier),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(classifier, conf.Origin),
	}

	if conf.RateLimit.Enabled && conf.RateLimit.GlobalRPS > 0 {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Prefix:            "global",
				Store:             middleware.ConfiguredStore(conf.RateLimit, options.Logger),
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(conf),
	)

	app.RegisterMiddleware(middlewares...)

	handlerOpts := controllers.ErrorHandlersOptions{Classifier: classifier}
	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(app, handlerOpts),
		controllers.MethodNotAllowed(handlerOpts),
	)
	serverInstance.ShutdownTimeout = conf.ShutdownTimeout
	return serverInstance, nil
}
