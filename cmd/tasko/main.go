package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jlbarros/tasko"
	fiberadapter "github.com/jlbarros/tasko/adapters/fiber"
	pgxadapter "github.com/jlbarros/tasko/adapters/pgx"
	"github.com/jlbarros/tasko/config"
)

func main() {
	cfg := config.Load()
	if cfg.Secret == "" {
		log.Fatal("TASKO_SECRET must be set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()

	storage := pgxadapter.New(pool)
	if err := storage.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema bootstrap: %v", err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	t, err := tasko.New(tasko.Config{
		Secret:   cfg.Secret,
		Database: storage,
		TokenTTL: cfg.TokenTTL,
	})
	if err != nil {
		log.Fatalf("could not create tasko instance: %v", err)
	}

	if err := fiberadapter.New(app).RegisterRoutes(t); err != nil {
		log.Fatalf("could not register routes: %v", err)
	}

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatalf("app.Listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Println("server stopped")
}
