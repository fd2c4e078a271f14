package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/venuetix/ticketing/internal/config"
	"github.com/venuetix/ticketing/internal/handlers"
	"github.com/venuetix/ticketing/internal/repository"
	"github.com/venuetix/ticketing/internal/services"
	xhttp "github.com/venuetix/ticketing/pkg/http"
	"github.com/venuetix/ticketing/pkg/logger"
	"github.com/venuetix/ticketing/pkg/pg"
	"github.com/venuetix/ticketing/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	hostname, _ := os.Hostname()
	if err := prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
		logger.Error("failed creating metrics registry", "error", err)
	}
	if config.Get().AppDebugMetricsAddr != "" {
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	counterRepo := repository.NewInvoiceCounterRepository(db, int64(config.Get().InvoiceCounterSeed))
	transactionRepo := repository.NewTransactionRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	detailRepo := repository.NewDetailRepository(db)

	// services
	invoiceService := services.NewInvoiceService(counterRepo, transactionRepo)
	calendarService := services.NewCalendarService(transactionRepo, ticketRepo, detailRepo)
	healthService := services.NewHealthService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cleanup *services.CleanupService
	if config.Get().CleanupEnabled {
		cleanup = services.NewCleanupService(
			ticketRepo,
			config.Get().CleanupStartupDelay,
			config.Get().CleanupRetentionDays,
		)
		go func() {
			if err := cleanup.Start(ctx); err != nil {
				logger.Info("cleanup workers stopped", "reason", err)
			}
		}()
	}

	// v1 handlers
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(g, invoiceHandler)
	handlers.RegisterCalendarRoutes(g, calendarHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	if cleanup != nil {
		cleanup.Stop()
	}
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
