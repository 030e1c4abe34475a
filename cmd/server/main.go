package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aklyuk/banking-ledger/configs"
	"github.com/aklyuk/banking-ledger/internal/handlers"
	"github.com/aklyuk/banking-ledger/internal/logger"
	"github.com/aklyuk/banking-ledger/internal/numbering"
	"github.com/aklyuk/banking-ledger/internal/routes"
	"github.com/aklyuk/banking-ledger/internal/seed"
	"github.com/aklyuk/banking-ledger/internal/service"
	"github.com/aklyuk/banking-ledger/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()
	store.NewDB()
	store.DBMigrate()

	directory := store.NewDirectory(store.DB)

	lastIssued, err := directory.MaxIssuedSequence(context.Background())
	if err != nil {
		logger.Log.Fatal("failed to read issued account numbers", zap.Error(err))
	}
	numbers := numbering.NewSequence(lastIssued)

	svc := service.NewAccountService(directory, numbers, logger.Log)

	if configs.AppConfig.Seed.DemoAccounts {
		seed.Run(context.Background(), svc)
	}

	handler := handlers.NewAccountHandler(svc, logger.Log)
	router := routes.NewRoutes(handler)

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := store.DB.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
