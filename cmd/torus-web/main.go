// Command torus-web runs the simulation continuously and streams frames to
// websocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/web"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "Listen address (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	g := game.NewGame(game.Options{Seed: rngSeed, Config: cfg, LogStats: *logStats})
	if err := g.Seed(cfg.Population.InitialPredators, cfg.Population.InitialPrey); err != nil {
		slog.Error("failed to seed population", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, g, cfg.Web); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves websocket clients and drives the simulation until ctx ends.
func run(ctx context.Context, g *game.Game, wc config.WebConfig) error {
	hub := web.NewHub(g.Width(), g.Height())
	srv := &http.Server{Addr: wc.Addr, Handler: hub.Handler()}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		slog.Info("listening", "addr", wc.Addr, "seed", g.RNGSeed())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// The game is only touched from this goroutine.
	eg.Go(func() error {
		tick := time.NewTicker(time.Duration(float64(time.Second) / wc.TicksPerSecond))
		defer tick.Stop()
		frames := time.NewTicker(time.Duration(wc.FrameIntervalMS) * time.Millisecond)
		defer frames.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("simulation stopped", "tick", g.Tick(),
					"predators", g.PredatorCount(), "prey", g.PreyCount())
				return nil
			case <-tick.C:
				g.Update()
			case <-frames.C:
				if err := hub.Broadcast(g.Frame()); err != nil {
					return err
				}
			}
		}
	})

	return eg.Wait()
}
