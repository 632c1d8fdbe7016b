package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"console-backend/internal/cache"
	"console-backend/internal/config"
	"console-backend/internal/erp"
	"console-backend/internal/handlers"
	"console-backend/internal/health"
	h "console-backend/internal/http"
	"console-backend/internal/middleware"
	"console-backend/internal/services"
)

func main() {
	cfg := config.Load()

	erpClient := erp.NewHTTPClient(cfg.ERP.BaseURL, cfg.ERP.APIKey)
	log.Printf("[Server] ERP API at %s", cfg.ERP.BaseURL)

	// Redis is preferred; a dead Redis degrades to the in-memory cache
	var store cache.Cache
	var redisPinger health.Pinger
	if redisCache, err := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Server] Redis unavailable (%v), using in-memory cache", err)
		store = cache.NewMemory()
	} else {
		store = redisCache
		redisPinger = redisCache
	}

	summaryService := services.NewSummaryService(erpClient)
	paymentService := services.NewPaymentService(erpClient, summaryService)
	itemSummaryService := services.NewItemSummaryService(erpClient, store, cfg.ItemSummaryTTL())
	healthChecker := health.NewHealthChecker(erpClient, redisPinger)

	router := h.NewRouter(
		handlers.NewCustomerAccountHandler(summaryService, itemSummaryService, erpClient),
		handlers.NewPaymentHandler(paymentService),
		handlers.NewAccountHandler(erpClient),
		handlers.NewHealthHandler(healthChecker),
		middleware.NewRequestLoggingMiddleware(),
	)

	corsHandler := middleware.NewCORS(cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsHandler(router),
	}

	go func() {
		log.Printf("[Server] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] shutdown error: %v", err)
	}
}
