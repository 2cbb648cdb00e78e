package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/config"
	"github.com/jpalomino/subastas/internal/expiry"
	"github.com/jpalomino/subastas/internal/handlers"
	"github.com/jpalomino/subastas/internal/notify"
	"github.com/jpalomino/subastas/internal/pg"
	"github.com/jpalomino/subastas/internal/repo"
	"github.com/jpalomino/subastas/internal/service"
	"github.com/jpalomino/subastas/pkg/auth"
	"github.com/jpalomino/subastas/pkg/clients"
	"github.com/jpalomino/subastas/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg        *config.Config
	api        *handlers.Handlers
	srv        *service.Services
	repo       *repo.Repositories
	sweeper    *expiry.Service
	dispatcher *notify.Dispatcher

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool).WithMaxRetries(cfg.TxRetries)
	auth.SetSecret(cfg.JWTSecret)

	dispatcher, err := buildDispatcher(cfg)
	if err != nil {
		zap.L().Error("build notification dispatcher failed: ", zap.Error(err))
		return fmt.Errorf("can't build notification dispatcher: %w", err)
	}
	dispatcher.Start(ctx)

	conn := pg.New(pool)
	a.cfg = cfg
	a.dispatcher = dispatcher
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, a.repo, txManager, dispatcher)
	a.api = handlers.New(a.srv)
	a.sweeper = expiry.New(cfg, a.repo.AuctionRepo, dispatcher)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startSweeper(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func buildDispatcher(cfg *config.Config) (*notify.Dispatcher, error) {
	var publishers []notify.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, amqpPub)
	}
	if cfg.WebhookURL != "" {
		publishers = append(publishers, notify.NewWebhookPublisher(cfg.WebhookURL, clients.NewHTTPClient()))
	}
	return notify.NewDispatcher(publishers...), nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSweeper(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.sweeper.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	a.dispatcher.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
