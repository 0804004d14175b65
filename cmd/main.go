package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartmolding/internal/catalog"
	"smartmolding/internal/handlers"
	"smartmolding/internal/logger"
	"smartmolding/internal/repository"
	"smartmolding/internal/server"
	"smartmolding/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the logger level can come from it
	cfgErr := loadConfig()

	log := logger.Get(logLevel())
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	if err := seedCatalog(repos, log); err != nil {
		log.Fatalw("failed to seed machine catalog", "err", err)
	}
	services := service.NewService(repos, serviceConfig(log))
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("analytics.shift_minutes", 480)
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "smartmolding.db")
		dbPath = "smartmolding.db"
	}
	return repository.InitDB(dbPath)
}

// seedCatalog loads the machine catalog on first start; a populated table is
// left alone so status survives a restart.
func seedCatalog(repos *repository.Repository, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := repos.Machines.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Infow("machine catalog already seeded", "machines", n)
		return nil
	}

	machines := catalog.Machines()
	if err := repos.Machines.Seed(ctx, machines); err != nil {
		return err
	}
	log.Infow("machine catalog seeded", "machines", len(machines))
	return nil
}

// serviceConfig maps configuration onto the service tunables.
func serviceConfig(log *logger.Logger) service.Config {
	cfg := service.Config{
		PlannedReasons: viper.GetStringSlice("analytics.planned_reasons"),
		ShiftMinutes:   viper.GetInt("analytics.shift_minutes"),
	}
	if tz := viper.GetString("plant.timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Warnw("invalid plant.timezone; falling back to local clock", "tz", tz, "err", err)
		} else {
			cfg.Location = loc
		}
	}
	return cfg
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
