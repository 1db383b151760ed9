// Command simclient drives headless clients against a relay, for soak
// testing the sync core without a renderer. Each bot steers a wandering
// course, fires the occasional broadside, and runs the full replication and
// prediction pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/apmckelvey/boat-man-shooters/game"
	"github.com/apmckelvey/boat-man-shooters/netstore"
	"github.com/apmckelvey/boat-man-shooters/network"
	"github.com/apmckelvey/boat-man-shooters/shared/netconfig"
)

func main() {
	url := flag.String("relay", "ws://127.0.0.1:8973/ws", "Relay websocket URL")
	bots := flag.Int("bots", 4, "Number of simulated clients")
	duration := flag.Duration("duration", 0, "Stop after this long (0 = run until interrupted)")
	fireChance := flag.Float64("fire", 0.01, "Per-tick chance a bot fires")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[simclient] interrupted, stopping bots...")
		cancel()
	}()
	if *duration > 0 {
		go func() {
			<-time.After(*duration)
			cancel()
		}()
	}

	log.Printf("[simclient] launching %d bots against %s", *bots, *url)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < *bots; i++ {
		i := i
		g.Go(func() error {
			return runBot(ctx, i, *url, *fireChance)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[simclient] fatal: %v", err)
	}
	log.Println("[simclient] done")
}

func runBot(ctx context.Context, n int, url string, fireChance float64) error {
	store, err := netstore.DialWs(ctx, url)
	if err != nil {
		return fmt.Errorf("bot %d: dial: %w", n, err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(n)))
	ship := game.NewShip(
		1+rng.Float64()*(game.WorldWidth-2),
		1+rng.Float64()*(game.WorldHeight-2),
	)

	// The replication loop reads the pose from its own goroutine, so the
	// bot publishes it under a lock instead of sharing the ship directly.
	var poseMu sync.Mutex
	poseX, poseY, poseRot := ship.Position()

	profile := game.Profile{
		PlayerID:   fmt.Sprintf("bot-%02d-%04x", n, rng.Intn(0xffff)),
		PlayerName: fmt.Sprintf("Bot_%02d", n),
	}
	mgr := network.NewManager(store, netconfig.DefaultConfig(), profile,
		func() (float64, float64, float64) {
			poseMu.Lock()
			defer poseMu.Unlock()
			return poseX, poseY, poseRot
		})
	mgr.Start()
	defer mgr.Stop()

	pred := network.NewPredictor()

	const dt = 1.0 / 20.0
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	// Wandering course: steering drifts on a per-bot sine.
	t := rng.Float64() * 100
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-report.C:
			log.Printf("[simclient] %s at (%.1f, %.1f): connected=%v ships=%d shots=%d",
				profile.PlayerName, ship.X, ship.Y,
				mgr.Connected(), len(pred.Views()), len(mgr.Projectiles()))
			continue
		case <-ticker.C:
		}

		t += dt
		ship.Update(dt, game.ShipInput{
			Steer:    math.Sin(t * 0.3),
			Throttle: 0.8,
		})
		poseMu.Lock()
		poseX, poseY, poseRot = ship.Position()
		poseMu.Unlock()

		pred.Update(dt, mgr)

		// Advance replicated cannonballs like a real client would.
		for _, ball := range mgr.Projectiles() {
			ball.Advance(dt)
		}

		if rng.Float64() < fireChance {
			side := game.SideLeft
			if rng.Intn(2) == 0 {
				side = game.SideRight
			}
			ball := game.NewCannonball(ship.X, ship.Y, ship.Rotation, side)
			if _, err := mgr.CreateProjectile(ball); err != nil {
				log.Printf("[simclient] %s fire failed: %v", profile.PlayerName, err)
			}
		}
	}
}
