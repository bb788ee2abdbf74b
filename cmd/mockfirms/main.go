// Command mockfirms runs a local stand-in for the NASA FIRMS area API so
// firewatch can be exercised end-to-end without a map key or network
// access. It serves the area CSV route with deterministic synthetic
// detections scattered inside the requested bounding box.
//
// Usage:
//
//	go run ./cmd/mockfirms -addr :9080 -count 25 -seed 42
//	FIRMS_MAP_KEY=any FIRMS_BASE_URL=http://localhost:9080 go run ./cmd/firewatch
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/firewatch/internal/adapter/httpadapter"
)

var viirsCategories = []string{"low", "nominal", "high"}

type generator struct {
	seed      int64
	count     int
	malformed int
	clock     clockwork.Clock
	logger    *slog.Logger
}

func main() {
	addr := flag.String("addr", ":9080", "listen address")
	count := flag.Int("count", 25, "synthetic detections per request")
	malformed := flag.Int("malformed", 0, "rows with missing coordinates per request")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	baseDate := flag.String("base-date", "", "acquisition end date (2006-01-02 format, default today UTC)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	clock := clockwork.Clock(clockwork.NewRealClock())
	if *baseDate != "" {
		t, err := time.Parse("2006-01-02", *baseDate)
		if err != nil {
			logger.Error("invalid -base-date", "error", err)
			os.Exit(1)
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	gen := &generator{
		seed:      *seed,
		count:     *count,
		malformed: *malformed,
		clock:     clock,
		logger:    logger,
	}

	srv := httpadapter.NewServer(*addr, logger)
	srv.HandleFunc("GET /api/area/csv/{key}/{source}/{area}/{days}", gen.handleArea)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("mock FIRMS server ready", "addr", *addr, "count", *count, "seed", *seed)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}

func (g *generator) handleArea(w http.ResponseWriter, r *http.Request) {
	source := r.PathValue("source")
	area := r.PathValue("area")
	days, err := strconv.Atoi(r.PathValue("days"))
	if err != nil || days < 1 || days > 10 {
		http.Error(w, "Invalid day range.", http.StatusBadRequest)
		return
	}

	minLon, minLat, maxLon, maxLat, err := parseArea(area)
	if err != nil {
		// Real FIRMS reports area errors as a plain-text body.
		fmt.Fprintln(w, "Invalid area.")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := g.writeCSV(w, source, minLat, maxLat, minLon, maxLon, days); err != nil {
		g.logger.Error("write response", "error", err)
		return
	}
	g.logger.Info("served area request", "source", source, "days", days, "rows", g.count+g.malformed)
}

// writeCSV emits a FIRMS-shaped CSV: numeric confidence for MODIS sources,
// categorical for VIIRS. The seed is combined with the source so each feed
// produces distinct but reproducible detections.
func (g *generator) writeCSV(w http.ResponseWriter, source string, minLat, maxLat, minLon, maxLon float64, days int) error {
	rng := rand.New(rand.NewSource(g.seed + int64(len(source))))
	endDate := g.clock.Now().UTC().Truncate(24 * time.Hour)
	viirs := strings.HasPrefix(source, "VIIRS")

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"latitude", "longitude", "acq_date", "acq_time", "satellite", "confidence", "frp", "daynight"}); err != nil {
		return err
	}

	for i := 0; i < g.count+g.malformed; i++ {
		lat := minLat + rng.Float64()*(maxLat-minLat)
		lon := minLon + rng.Float64()*(maxLon-minLon)
		date := endDate.AddDate(0, 0, -rng.Intn(days))
		acqTime := fmt.Sprintf("%d", rng.Intn(24)*100+rng.Intn(60))

		confidence := strconv.Itoa(20 + rng.Intn(81))
		if viirs {
			confidence = viirsCategories[rng.Intn(len(viirsCategories))]
		}

		// Squaring skews FRP low, matching real feeds where most fires
		// are small and a few are very large.
		u := rng.Float64()
		frp := fmt.Sprintf("%.1f", u*u*300)

		row := []string{
			fmt.Sprintf("%.4f", lat),
			fmt.Sprintf("%.4f", lon),
			date.Format("2006-01-02"),
			acqTime,
			mockSatelliteName(source),
			confidence,
			frp,
			dayNight(rng),
		}
		if i >= g.count {
			row[0] = "" // malformed: missing latitude
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseArea(area string) (minLon, minLat, maxLon, maxLat float64, err error) {
	parts := strings.Split(area, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("area needs 4 fields, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("area field %d: %w", i, err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func mockSatelliteName(source string) string {
	switch {
	case strings.HasPrefix(source, "VIIRS_NOAA20"):
		return "N20"
	case strings.HasPrefix(source, "VIIRS"):
		return "N"
	default:
		return "Terra"
	}
}

func dayNight(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return "D"
	}
	return "N"
}
