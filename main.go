package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configsdatabase"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/database"
	"praxisnote.app/jobs"
	"praxisnote.app/routes"
	"praxisnote.app/watcher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	// The data dir must exist before the SQLite file inside it can be opened.
	if err := configsapp.EnsureDirs(); err != nil {
		configslog.Log.Fatal("Could not create data directories", zap.Error(err))
	}

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	database.Initialize(configsdatabase.GetDB(), true, true)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 64 * 1024 * 1024,
		AppName:   configsapp.PracticeName(),
	})
	app.Static("/static", "./static")
	routes.SetupRoutes(app)

	scheduler := jobs.NewScheduler()
	if err := scheduler.Start(); err != nil {
		configslog.Log.Fatal("Could not start scheduler", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		configslog.SLog.Infof("Listening on http://%s", configsapp.ListenAddr())
		return app.Listen(configsapp.ListenAddr())
	})

	if configsapp.WatchInbox() {
		g.Go(func() error {
			return watcher.NewInboxWatcher().Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		configslog.SLog.Info("Shutting down...")

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)

		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		configslog.Log.Error("Server exited with error", zap.Error(err))
	}
}
