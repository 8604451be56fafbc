package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/antonvlasov/airline/config"
	"github.com/antonvlasov/airline/internal/menu"
	"github.com/antonvlasov/airline/internal/repository"
	"github.com/antonvlasov/airline/internal/service/airline"
	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

func main() {
	godotenv.Load()

	cfgPath := pflag.String("config", "", "path to the yaml config file")
	dataDir := pflag.String("data-dir", "", "override the storage directory")
	pflag.Parse()

	path := *cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			logger.New("info").Fatal("load config", "error", err)
		}
		cfg = loaded
	}
	if *dataDir != "" {
		cfg.Storage.Dir = *dataDir
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.NewMetrics("airline", prometheus.DefaultRegisterer)

	passengerRepo := repository.NewPassengerRepository(cfg.Storage.PassengersPath(), log, m)
	flightRepo := repository.NewFlightRepository(cfg.Storage.FlightsPath(), log, m)
	reservationRepo := repository.NewReservationRepository(cfg.Storage.ReservationsPath(), log, m)

	policy := airline.RefundPolicy{
		FullRefundWindow: cfg.Refund.FullWindow(),
		HalfRefundWindow: cfg.Refund.HalfWindow(),
		EarlyPercent:     cfg.Refund.EarlyPercent,
		LatePercent:      cfg.Refund.LatePercent,
	}

	service := airline.NewService(passengerRepo, flightRepo, reservationRepo, policy, log,
		airline.WithMetrics(m))
	if err := service.Load(); err != nil {
		log.Fatal("load data", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The menu blocks on stdin, so a signal flushes here rather than
	// waiting for the prompt to come back.
	go func() {
		<-ctx.Done()
		if err := service.Flush(); err != nil {
			log.Error("flush on shutdown", "error", err)
		}
		log.Info("data saved, exiting")
		os.Exit(0)
	}()

	if err := menu.New(service, os.Stdin, os.Stdout, log).Run(ctx); err != nil {
		log.Fatal("menu error", "error", err)
	}
}
