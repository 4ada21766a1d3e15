package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/database"
	"github.com/nikka005/nirbani-sub001/internal/logger"
	"github.com/nikka005/nirbani-sub001/internal/router"
	"github.com/nikka005/nirbani-sub001/internal/scheduler"
	"github.com/nikka005/nirbani-sub001/internal/sms"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.Server.Mode)
	defer log.Sync()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	smsClient := sms.NewClient(cfg.SMS, log)
	if smsClient.Simulated() {
		log.Info("sms gateway not configured, messages will be logged only")
	}

	renderer, err := billing.NewRenderer(cfg.Dairy)
	if err != nil {
		log.Fatal("billing templates failed", zap.Error(err))
	}

	sched := scheduler.New(db, smsClient, cfg.Scheduler, log)
	if err := sched.Start(); err != nil {
		log.Fatal("scheduler start failed", zap.Error(err))
	}

	engine := router.Setup(db, cfg, smsClient, renderer, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
