package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-ecommerce-api/internal/auth"
	"github.com/ariefcatur/go-ecommerce-api/internal/catalog"
	"github.com/ariefcatur/go-ecommerce-api/internal/config"
	"github.com/ariefcatur/go-ecommerce-api/internal/httpx"
	kafkax "github.com/ariefcatur/go-ecommerce-api/internal/kafka"
	"github.com/ariefcatur/go-ecommerce-api/internal/orders"
	"github.com/ariefcatur/go-ecommerce-api/internal/postgres"
	"github.com/ariefcatur/go-ecommerce-api/internal/redisx"
	"github.com/ariefcatur/go-ecommerce-api/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maker, err := auth.NewMaker(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token maker")
	}

	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024, log)
	prod.Start(ctx)

	server := &httpx.Server{
		Auth: &httpx.AuthHandler{
			Users: &users.Repo{DB: db},
			Maker: maker,
			Log:   log,
		},
		Products: &httpx.ProductsHandler{
			Store: &catalog.Repo{DB: db},
			Log:   log,
		},
		Orders: &httpx.OrdersHandler{
			Store:    &orders.Repo{DB: db},
			Cache:    &redisx.OrderCache{RDB: rdb},
			Producer: prod,
			Service:  cfg.ServiceName,
			Log:      log,
		},
		Maker: maker,
		Log:   log,
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Router()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-gctx.Done():
		}
		log.Info().Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited")
	}

	prod.Close()
	prod.WaitClosed()
}
