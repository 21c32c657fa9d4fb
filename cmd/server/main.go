package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	zlog "github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/auth"
	"github.com/dripapps/canva-connect/authstate"
	"github.com/dripapps/canva-connect/canva"
	"github.com/dripapps/canva-connect/designs"
	"github.com/dripapps/canva-connect/export"
	"github.com/dripapps/canva-connect/fetch"
	"github.com/dripapps/canva-connect/internal/config"
	"github.com/dripapps/canva-connect/server"
	"github.com/dripapps/canva-connect/sessions"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	displayAppname(cfg.GetAppName())

	pendingRepo := authstate.NewInMemoryRepo()
	sessionRepo := sessions.NewInMemoryRepo()

	authService, err := auth.NewAuthorizationService(cfg, pendingRepo, sessionRepo)
	if err != nil {
		return fmt.Errorf("auth.NewAuthorizationService: %w", err)
	}

	apiClient := canva.NewClient(cfg)
	runner := export.NewRunner(apiClient, cfg.GetExportPollInterval(), cfg.GetExportMaxAttempts())
	fetcher := fetch.NewFetcher(cfg)

	registry := designs.NewInMemoryRegistry()
	if _, err := registry.Rehydrate(cfg.GetUploadDir()); err != nil {
		zlog.Err(err).Msg("Could not rehydrate import registry, starting empty")
	}

	catalog := designs.NewCatalog(apiClient, authService, registry, runner, fetcher)

	srv := server.New(cfg, authService, catalog, pendingRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.StartAuthStateCleanup(ctx)

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
