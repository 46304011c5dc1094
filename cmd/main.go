package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/handlers"
	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/repository"
	"github.com/ariandto/iotskripsinew/internal/repository/db"
	"github.com/ariandto/iotskripsinew/internal/server"
	"github.com/ariandto/iotskripsinew/internal/service"

	"github.com/spf13/viper"
)

// Driver cadences: schedules fire on minute boundaries, the energy total of
// every ON room is folded forward every few seconds.
const (
	defaultSchedulerTick = 1 * time.Minute
	defaultRefreshTick   = 5 * time.Second
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	clk := newClock()
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, clk, log, serviceConfig())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the schedule executor and the energy refresher
	go services.Executor.Run(ctx, durationOr("scheduler.interval", defaultSchedulerTick))
	go services.PowerRefresh.Run(ctx, durationOr("power.refresh_interval", defaultRefreshTick))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// newClock pins the app to one civil timezone; schedules are wall-clock times.
func newClock() clock.Clock {
	tz := viper.GetString("timezone")
	if tz == "" {
		tz = clock.DefaultTimezone
	}
	return clock.NewSystem(tz)
}

func serviceConfig() service.Config {
	return service.Config{
		PowerRate:     viper.GetFloat64("power.rate"),
		MatchWindow:   viper.GetDuration("scheduler.window"),
		TickTimeout:   viper.GetDuration("scheduler.tick_timeout"),
		ConnectionTTL: viper.GetDuration("connection.ttl"),
		SigningKey:    viper.GetString("auth.signing_key"),
		TokenTTL:      viper.GetDuration("auth.token_ttl"),
	}
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return fallback
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
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
