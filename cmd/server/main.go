package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/config"
	"github.com/smidy/ChickenFight-sub000/handlers"
	"github.com/smidy/ChickenFight-sub000/persistence"
	"github.com/smidy/ChickenFight-sub000/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Fatalf("Invalid environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	// Initialize database
	db, err := openStorage(cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	logger.Println("Persistence initialized successfully")

	manager := actor.Spawn("manager", nil, services.NewManager(services.ManagerOptions{
		Maps:           cfg.Maps,
		Store:          db,
		PendingTimeout: cfg.Session.PendingTimeout,
		Logger:         logger,
	}))
	clientManager := handlers.NewClientManager(logger)

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: handlers.NewRouter(handlers.Options{
			Manager:    manager,
			Clients:    clientManager,
			AskTimeout: cfg.Session.AskTimeout,
			Logger:     logger,
		}, db),
	}

	go func() {
		logger.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan struct{})
	go runConsole(os.Stdin, clientManager, quit)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case sig := <-signals:
		logger.Printf("Received %s", sig)
	}

	logger.Println("Shutting down")
	clientManager.DisconnectAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("HTTP shutdown: %v", err)
	}

	manager.Stop()
	<-manager.Done()
	logger.Println("Server stopped")
}

func openStorage(cfg config.StorageConfig, logger *log.Logger) (persistence.Storage, error) {
	if cfg.Type == "postgres" {
		logger.Println("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.DatabaseURL, logger)
	}
	logger.Printf("Using JSON persistence (%s)", cfg.File)
	return persistence.NewJSONStore(cfg.File)
}

// runConsole reads operator commands until quit or end of input
func runConsole(in *os.File, clients *handlers.ClientManager, quit chan<- struct{}) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "quit", "exit":
			close(quit)
			return
		case "sessions":
			fmt.Printf("%d connected session(s)\n", clients.Count())
		case "":
		default:
			fmt.Println("commands: sessions, quit, exit")
		}
	}
}
