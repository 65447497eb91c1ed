package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"hotelbooking/config"
	"hotelbooking/internal"
	"hotelbooking/services"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configPath, logger)
	stop()
	if err != nil {
		logger.Error("boot", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// run wires the services and serves until ctx is cancelled or the server fails.
func run(ctx context.Context, configPath string, logger *internal.Logger) error {
	logger.Info("using config file: " + configPath)
	conf, err := config.GetConfig(configPath)
	if err != nil {
		return err
	}

	signer, err := internal.NewSigner(conf.Merchant)
	if err != nil {
		return fmt.Errorf("merchant: %w", err)
	}

	mongo, err := internal.NewMongoClient(conf)
	if err != nil {
		return fmt.Errorf("mongo client: %w", err)
	}
	logger.Info("mongo client initialized")

	uploader, err := internal.NewGridUploader(mongo, "")
	if err != nil {
		closeMongo(mongo, logger)
		return fmt.Errorf("image storage: %w", err)
	}

	var sessions services.SessionStore
	if conf.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer func() { _ = client.Close() }()
		if err = client.Ping(ctx).Err(); err != nil {
			closeMongo(mongo, logger)
			return fmt.Errorf("redis client: %w", err)
		}
		sessions = internal.NewRedisSessions(client, conf.Redis.Prefix, conf.Session.TTL)
		logger.Info("redis sessions initialized")
	} else {
		sessions = internal.NewMemorySessions(conf.Session.TTL)
		logger.Warn("redis disabled; sessions kept in memory")
	}

	proxies, err := internal.NewTrustedProxies(conf.Listen.TrustedProxies)
	if err != nil {
		closeMongo(mongo, logger)
		return fmt.Errorf("trusted proxies: %w", err)
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := internal.NewMetrics(registry)

	refs := internal.NewReferenceGenerator(conf.Merchant.TxnRef, conf.Merchant.NodeId)

	accounts := internal.NewAccounts(mongo, uploader, conf.Upload.Extensions)
	accounts.SetLogger(internal.NewLogger("accounts", conf.IsDebug, mongo))

	catalog := internal.NewCatalog(mongo, uploader, conf.Upload.Extensions)
	catalog.SetLogger(internal.NewLogger("catalog", conf.IsDebug, mongo))

	bookings := internal.NewBookings(mongo, refs)
	bookings.SetLogger(internal.NewLogger("bookings", conf.IsDebug, mongo))

	payments := internal.NewPayments(signer, refs)
	payments.SetLogger(internal.NewLogger("payments", conf.IsDebug, mongo))
	payments.SetDatabase(mongo)
	payments.SetMetrics(metrics)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
	server.SetAccounts(accounts)
	server.SetCatalog(catalog)
	server.SetBookings(bookings)
	server.SetPaymentsService(payments)
	server.SetSessionStore(sessions)
	server.SetTrustedProxies(proxies)
	server.SetMetrics(metrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", err)
		}
		return mongo.Close(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func closeMongo(mongo *internal.MongoDB, logger *internal.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := mongo.Close(ctx); err != nil {
		logger.Error("mongo close", err)
	}
}
