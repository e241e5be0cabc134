package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/allocation"
	"github.com/yut0n/ticketstock/internal/config"
	"github.com/yut0n/ticketstock/internal/database"
	"github.com/yut0n/ticketstock/internal/handler"
	"github.com/yut0n/ticketstock/internal/queue"
	"github.com/yut0n/ticketstock/internal/repository"
	"github.com/yut0n/ticketstock/internal/router"
	queue_publisher "github.com/yut0n/ticketstock/internal/service"
	"github.com/yut0n/ticketstock/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, database.Pool{
		MaxOpen:         cfg.DBMaxOpen,
		MaxIdle:         cfg.DBMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil && cfg.AllocatorMode == config.AllocatorRedis {
		log.Fatal("redis is unreachable and ALLOCATOR_MODE=redis requires it")
	}

	// In mysql mode redis is optional: allocation runs inside the ledger
	// and the service degrades the store-backed views instead of panicking.
	var seatStore allocation.SeatStore
	if rdb != nil {
		seatStore = store.New(rdb)
	}

	catalogRepo := repository.NewCatalogRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	svc := allocation.New(seatStore, orderRepo, catalogRepo, allocation.Mode(cfg.AllocatorMode))
	svc.Publisher = allocation.PublisherFunc(queue_publisher.PublishSaleCompleted)

	// Resolve variations against a store populated by an earlier rebuild.
	// An empty database (fresh deployment, before the first admin init) is
	// not fatal.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := svc.LoadIndex(ctx); err != nil {
		log.Printf("catalog index not loaded yet: %v", err)
	}
	cancel()

	go func() {
		if err := queue.StartSaleConsumer(); err != nil {
			log.Printf("sale consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e,
		handler.NewBrowseHandler(catalogRepo, svc),
		handler.NewBuyHandler(svc),
		handler.NewSalesHandler(svc),
		config.LoadRateLimitConfig(), rdb,
	)
	router.RegisterAdmin(e,
		handler.NewAuthHandler(cfg.AdminPassHash, cfg.JWTSecret, cfg.AdminTTLMin),
		handler.NewAdminHandler(db, cfg.SeedFile, svc, svc),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, allocator=%s)", addr, cfg.Env, cfg.AllocatorMode)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
