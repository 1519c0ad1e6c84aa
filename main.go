package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/chartview/service"
	"github.com/dnldd/chartview/shared"
	"github.com/dnldd/chartview/widget"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	interval := shared.OneHour
	if cfg.Interval != "" {
		interval, err = shared.ParseInterval(cfg.Interval)
		if err != nil {
			log.Printf("parsing interval: %v", err)
			return
		}
	}

	theme, err := widget.ParseTheme(cfg.Theme)
	if err != nil {
		log.Printf("parsing theme: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chartCfg := service.ChartConfig{
		Tickers:          cfg.Tickers,
		Interval:         interval,
		FMPAPIKey:        cfg.FMPAPIKey,
		DatabaseEndpoint: cfg.DatabaseEndpoint,
		DatabaseUser:     cfg.DatabaseUser,
		DatabasePass:     cfg.DatabasePass,
		Theme:            theme,
		Locale:           cfg.Locale,
		Timezone:         cfg.Timezone,
		AliasFilePath:    cfg.AliasFilePath,
		ShowVolume:       cfg.ShowVolume,
		MAWindow:         cfg.MAWindow,
		Cancel:           cancel,
	}
	chart, err := service.NewChart(ctx, &chartCfg)
	if err != nil {
		log.Printf("creating chart service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	chart.Run(ctx)
}
