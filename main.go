package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/emicklei/go-restful"
	"github.com/getsentry/raven-go"
	"github.com/go-redis/redis"
	"github.com/promoscan/promoscan/helpers"
	"github.com/promoscan/promoscan/linkcheck"
	"github.com/promoscan/promoscan/metrics"
	"github.com/promoscan/promoscan/mirror"
	"github.com/promoscan/promoscan/rest"
	"github.com/promoscan/promoscan/version"
	"github.com/promoscan/promoscan/youtube"
	"github.com/sirupsen/logrus"
)

// Entrypoint
func main() {
	log := logrus.New()
	log.Out = os.Stdout
	log.Level = logrus.InfoLevel
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}

	// Read config
	configPath := os.Getenv("PROMOSCAN_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}
	helpers.LoadConfig(configPath)

	if dsn := helpers.ConfigString("sentry_dsn"); dsn != "" {
		if err := raven.SetDSN(dsn); err != nil {
			log.WithField("module", "launcher").WithError(err).Error("sentry setup failed")
		}
	}

	apiKey := helpers.ConfigString("youtube.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if apiKey == "" {
		log.WithField("module", "launcher").Fatal("no YouTube API key configured")
	}

	log.WithField("module", "launcher").Info("booting promoscan...")
	version.DumpInfo(log.WithField("module", "launcher"))

	// Start metric server
	metrics.Init(log.WithField("module", "metrics"), helpers.ConfigStringDefault("metrics_address", "127.0.0.1:1337"))

	// Durable quota mirror: redis when configured, local files otherwise.
	// The ledger never sees which one it got.
	var store mirror.Store
	if address := helpers.ConfigStringDefault("redis.address", os.Getenv("REDIS_ADDRESS")); address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: helpers.ConfigString("redis.password"),
		})
		store = mirror.NewRedis(client)
		log.WithField("module", "launcher").Info("using redis quota mirror")
	} else {
		dir := helpers.ConfigStringDefault("mirror_directory", os.TempDir())
		store = mirror.NewFile(dir)
		log.WithField("module", "launcher").WithField("directory", dir).Info("using file quota mirror")
	}

	ledger := youtube.NewLedger(store, log.WithField("module", "quota"))
	responseCache := youtube.NewResponseCache()

	svc, err := youtube.NewService(context.Background(), apiKey, ledger, log.WithField("module", "youtube"))
	if err != nil {
		log.WithField("module", "launcher").WithError(err).Fatal("youtube service init failed")
	}

	prober := linkcheck.NewProber(log.WithField("module", "linkcheck"))

	api := rest.New(svc, responseCache, prober, log.WithField("module", "rest"))

	container := restful.NewContainer()
	for _, service := range api.NewRestServices() {
		container.Add(service)
	}
	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		Container:      container,
	}
	container.Filter(cors.Filter)
	container.Filter(container.OPTIONSFilter)

	listenAddress := helpers.ConfigStringDefault("listen_address", ":3000")
	log.WithField("module", "launcher").WithField("address", listenAddress).Info("API listening")
	log.Fatal(http.ListenAndServe(listenAddress, container))
}
