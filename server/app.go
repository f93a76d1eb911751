package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"worktrack/config"
	"worktrack/internal/auth"
	"worktrack/internal/db"
	"worktrack/internal/health"
	"worktrack/internal/logs"
	"worktrack/internal/middleware"
	"worktrack/internal/repo"
	"worktrack/internal/views"
	"worktrack/internal/web"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) error {
	a.cfg = cfg

	/* 1) Логи */
	if err := logs.Init(logs.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		return err
	}

	/* 2) DB + схема */
	d, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("db open failed: %w", err)
	}
	if err := db.Migrate(d); err != nil {
		return fmt.Errorf("db migrate failed: %w", err)
	}
	a.db = d

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	/* 3) Сессии и хранилище файлов */
	sessions, checks, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	files, err := objectStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	users, profiles := repo.NewUserStore(d), repo.NewProfileStore(d)
	invoices, issues := repo.NewInvoiceStore(d), repo.NewIssueStore(d)
	events, ledger := repo.NewEventStore(d), repo.NewLedgerStore(d)

	authSvc := auth.NewService(users, profiles, sessions, auth.Options{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	}, logs.Logger)

	/* 4) Router + middleware */
	a.Router = mux.NewRouter()
	a.Router.Use(
		middleware.RequestID,
		middleware.LoggerMW,
		middleware.Recoverer,
	)

	/* 5) Health */
	health.RegisterRoutes(a.Router, append([]health.Check{health.DB(d)}, checks...)...)

	/* 6) Страницы */
	web.Attach(a.Router, web.Dependencies{
		Auth: authSvc,
		Views: &views.Composer{
			InvoiceStore: invoices,
			IssueStore:   issues,
			EventStore:   events,
			LedgerStore:  ledger,
			ProfileStore: profiles,
		},
		Invoices: invoices,
		Issues:   issues,
		Events:   events,
		Ledger:   ledger,
		Storage:  files,
		Log:      logs.Logger,

		CookieName:   cfg.Auth.CookieName,
		SecureCookie: cfg.Auth.SecureCookie,
		Currency:     cfg.App.Currency,
		Departments:  cfg.App.Departments,
		Location:     cfg.Location(),
	})

	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		logs.Logger.Debugf("route: %-6v %s", methods, path)
		return nil
	})
	return nil
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// тайм-ауты рассчитаны на загрузку документов до 10 МБ
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case <-a.ctx.Done():
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
