package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	tenantauth "github.com/goliatone/go-tenant-auth"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *Config
	repo   tenantauth.RepositoryManager
	auther *tenantauth.Auther
	http   *tenantauth.RouteAuthenticator
	srv    router.Server[*fiber.App]
}

func main() {
	cfg := LoadConfig()

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybePrettyJSON(cfg.Sanitized()))
		fmt.Println("============")
	}

	ctx := context.Background()

	app := &App{config: cfg}

	if err := WithPersistence(ctx, app); err != nil {
		log.Fatal(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		log.Fatal(err)
	}

	app.srv.Serve(cfg.HTTPAddr)

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.config.DatabaseDSN)
	if err != nil {
		return err
	}

	if err := tenantauth.RunMigrations(ctx, db, "sqlite3"); err != nil {
		return err
	}

	bdb := bun.NewDB(db, sqlitedialect.New())

	repo := tenantauth.NewRepositoryManager(bdb)
	repo.MustValidate()

	app.repo = repo

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	provider := tenantauth.NewUserProvider(app.repo.Users())
	auther := tenantauth.NewAuthenticator(provider, app.config)

	httpAuth, err := tenantauth.NewHTTPAuthenticator(auther, app.config)
	if err != nil {
		return err
	}

	app.auther = auther
	app.http = httpAuth

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.config.Debug,
			StrictRouting:     false,
		}))
	})

	api := srv.Router().Group("/api")

	controller := tenantauth.RegisterAuthRoutes(api,
		tenantauth.WithControllerRepo(app.repo),
		tenantauth.WithControllerAuther(auther),
		tenantauth.WithControllerContextKey(app.config.GetContextKey()),
		tenantauth.WithControllerDebug(app.config.Debug),
	)

	protected := httpAuth.ProtectedRoute(app.config, httpAuth.MakeClientRouteAuthErrorHandler(false))
	tenantauth.RegisterTenantRoutes(api, controller, protected)

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
