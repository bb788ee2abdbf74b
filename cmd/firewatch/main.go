// Command firewatch checks for recent satellite fire detections around a
// point. It prompts for a latitude, longitude, search radius, and day
// range, queries the configured FIRMS sources, and prints the reliable
// detections as a table sorted by distance.
//
// Configuration comes from the environment (or a .env file); FIRMS_MAP_KEY
// is required. Exit codes: 0 on success, 2 on invalid input, 1 on fetch or
// configuration failure.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/firewatch/internal/adapter/firms"
	"github.com/couchcryptid/firewatch/internal/config"
	"github.com/couchcryptid/firewatch/internal/domain"
	"github.com/couchcryptid/firewatch/internal/observability"
	"github.com/couchcryptid/firewatch/internal/render"
	"github.com/couchcryptid/firewatch/internal/scanner"
)

const (
	exitOK    = 0
	exitError = 1
	exitInput = 2
)

// newMetrics is swapped in tests for a registry-free constructor.
var newMetrics = observability.NewMetrics

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "configuration error:", err)
		return exitError
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	req, err := promptRequest(bufio.NewReader(stdin), stdout, cfg)
	if err != nil {
		fmt.Fprintln(stderr, "invalid input:", err)
		return exitInput
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintln(stderr, "invalid input:", err)
		return exitInput
	}

	metrics := newMetrics()
	client := firms.NewClient(cfg.FIRMSMapKey, cfg.FIRMSBaseURL, cfg.FIRMSTimeout, metrics, logger)
	s := scanner.New(client, cfg.Sources, logger, metrics)

	fmt.Fprintf(stdout, "\nChecking for fires near (%.4f, %.4f) within %.0f km over the last %d days...\n\n",
		req.Query.Center.Lat, req.Query.Center.Lon, req.Query.RadiusKm, req.Query.Days)

	report, err := s.Scan(context.Background(), req)
	if err != nil {
		logger.Error("scan failed", "error", err)
		fmt.Fprintln(stderr, "scan failed:", err)
		return exitError
	}

	render.Table(stdout, report)
	return exitOK
}

// promptRequest reads the four interactive inputs and assembles a scan
// request using the configured thresholds.
func promptRequest(in *bufio.Reader, out io.Writer, cfg *config.Config) (scanner.Request, error) {
	lat, err := promptFloat(in, out, "Enter latitude: ")
	if err != nil {
		return scanner.Request{}, err
	}
	lon, err := promptFloat(in, out, "Enter longitude: ")
	if err != nil {
		return scanner.Request{}, err
	}
	radius, err := promptFloat(in, out, "Enter radius in km: ")
	if err != nil {
		return scanner.Request{}, err
	}
	days, err := promptInt(in, out, "Enter number of days to check: ")
	if err != nil {
		return scanner.Request{}, err
	}

	return scanner.Request{
		Query: domain.Query{
			Center:   domain.Point{Lat: lat, Lon: lon},
			RadiusKm: radius,
			Days:     days,
		},
		MinConfidence: cfg.MinConfidence,
		Thresholds: domain.RiskThresholds{
			MediumFRP: cfg.RiskMediumFRP,
			HighFRP:   cfg.RiskHighFRP,
		},
	}, nil
}

func promptFloat(in *bufio.Reader, out io.Writer, label string) (float64, error) {
	s, err := promptLine(in, out, label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func promptInt(in *bufio.Reader, out io.Writer, label string) (int, error) {
	s, err := promptLine(in, out, label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

func promptLine(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
