package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wlgs/fatigue-detection-system/internal/config"
	"github.com/wlgs/fatigue-detection-system/internal/logging"
	"github.com/wlgs/fatigue-detection-system/internal/restcycle"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to YAML configuration (optional)")
	scenario := flag.String("scenario", "", "environment scenario (normal|degraded|adverse)")
	profile := flag.String("profile", "", "driver profile preset")
	seed := flag.Int64("seed", 0, "random seed (0 keeps the configured seed)")
	ticks := flag.Int("ticks", 0, "stop after N ticks (0 runs until interrupted)")
	interval := flag.Duration("interval", 0, "real-time pacing per tick")
	auditPath := flag.String("audit", "", "append alarm audit JSON lines to this file (optional)")
	flag.Parse()

	params, err := resolveParams(*configPath)
	if err != nil {
		log.Fatalf("[SIM] %v", err)
	}
	if *scenario != "" {
		params.Scenario = *scenario
	}
	if *profile != "" {
		params.Profile = *profile
	}
	if *seed != 0 {
		params.Seed = *seed
	}
	if *ticks != 0 {
		params.Engine.MaxTicks = *ticks
	}
	if *interval != 0 {
		params.Engine.TickInterval = *interval
	}

	audit, closeAudit, err := openAudit(*auditPath)
	if err != nil {
		log.Fatalf("[SIM] %v", err)
	}
	defer closeAudit()

	engine, err := restcycle.NewEngine(params, audit)
	if err != nil {
		log.Fatalf("[SIM] %v", err)
	}

	log.Printf("[SIM] scenario=%s profile=%s seed=%d", params.Scenario, params.Profile, params.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Releases the report loop once the run ends on its own.
		defer stop()
		return engine.Run(ctx)
	})
	g.Go(func() error {
		return reportLoop(ctx, engine)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[SIM] run failed: %v", err)
	}
	printSummary(engine)
}

// #endregion main

// #region report-loop

// reportLoop logs a status line every few seconds until the run ends.
func reportLoop(ctx context.Context, engine *restcycle.Engine) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m, ok := engine.LastMetrics()
			if !ok {
				continue
			}
			log.Printf("[SIM] tick=%d budget=%.1f p=%.3f alarm=%v weather=%s traffic=%s road=%s %s",
				m.Tick, m.RestBudget, m.Probability, m.Alarm,
				m.Context.Weather, m.Context.Traffic, m.Context.Road, m.Context.TimeOfDay)
		}
	}
}

// #endregion report-loop

// #region helpers

func resolveParams(path string) (restcycle.Params, error) {
	if path == "" {
		return restcycle.DefaultParams(), nil
	}
	f, err := config.Load(path)
	if err != nil {
		return restcycle.Params{}, err
	}
	return f.Params()
}

func openAudit(path string) (*logging.AuditLog, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit file: %w", err)
	}
	return logging.NewAuditLog(f), func() { _ = f.Close() }, nil
}

func printSummary(engine *restcycle.Engine) {
	stats := engine.Stats()
	fmt.Printf("ticks:        %d\n", stats.Ticks)
	fmt.Printf("rests:        %d\n", stats.Rests)
	fmt.Printf("alarm events: %d (valid=%d false=%d)\n", stats.AlarmEvents, stats.Valid, stats.False)
	fmt.Printf("missed:       %d\n", stats.Missed)
	fmt.Printf("accuracy:     %.3f\n", stats.Accuracy())
}

// #endregion helpers
