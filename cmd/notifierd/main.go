package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gimlet-io/rocketchat-notifier/cmd/notifierd/config"
	"github.com/gimlet-io/rocketchat-notifier/pkg/notifications"
	"github.com/gimlet-io/rocketchat-notifier/pkg/server"
	"github.com/gimlet-io/rocketchat-notifier/pkg/store"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Warnf("could not load .env file, relying on env vars")
	}

	config, err := config.Environ()
	if err != nil {
		logger := logrus.WithError(err)
		logger.Fatalln("main: invalid configuration")
	}

	initLogging(config)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		fmt.Println(config.String())
	}

	if config.RocketChat.WebhookURL == "" {
		logrus.Warn("WEBHOOK_URL is not set, every notification attempt will fail")
	}

	store := store.New(config.Database.Driver, config.Database.Config)
	defer store.Close()

	publisher := notifications.NewPublisher(
		notifications.NewRocketChatProvider(config.RocketChat.DeliveryTimeout),
	)
	metrics := server.NewMetrics(prometheus.DefaultRegisterer)

	metricsRouter := chi.NewRouter()
	metricsRouter.Get("/metrics", promhttp.Handler().ServeHTTP)
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", config.MetricsPort), metricsRouter)
		if err != nil {
			logrus.Errorf("metrics server stopped: %s", err)
		}
	}()

	r := server.SetupRouter(config, store, publisher, metrics)
	go func() {
		logrus.Infof("listening on :%d", config.Port)
		err := http.ListenAndServe(fmt.Sprintf(":%d", config.Port), r)
		if err != nil {
			panic(err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh
	logrus.Info("Stopping.")
}

// helper function configures the logging.
func initLogging(c *config.Config) {
	if c.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.Logging.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if c.Logging.Text {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   c.Logging.Color,
			DisableColors: !c.Logging.Color,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint: c.Logging.Pretty,
		})
	}
}
