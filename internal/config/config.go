package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all firewatch settings, populated from environment
// variables with optional .env support.
type Config struct {
	FIRMSMapKey  string
	FIRMSBaseURL string
	FIRMSTimeout time.Duration
	Sources      []string

	MinConfidence float64
	RiskMediumFRP float64
	RiskHighFRP   float64

	LogLevel  string
	LogFormat string
}

// defaultSources are the three FIRMS near-real-time feeds covering both
// sensor families.
var defaultSources = []string{"MODIS_NRT", "VIIRS_NOAA20_NRT", "VIIRS_SUOMI_NPP_NRT"}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// Best-effort: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	timeout, err := parseDuration("FIRMS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	minConfidence, err := parseFloat("MIN_CONFIDENCE", 40)
	if err != nil {
		return nil, err
	}

	riskMedium, err := parseFloat("RISK_FRP_MEDIUM", 10)
	if err != nil {
		return nil, err
	}

	riskHigh, err := parseFloat("RISK_FRP_HIGH", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FIRMSMapKey:   os.Getenv("FIRMS_MAP_KEY"),
		FIRMSBaseURL:  envOrDefault("FIRMS_BASE_URL", "https://firms.modaps.eosdis.nasa.gov"),
		FIRMSTimeout:  timeout,
		Sources:       parseSources(envOrDefault("FIRMS_SOURCES", strings.Join(defaultSources, ","))),
		MinConfidence: minConfidence,
		RiskMediumFRP: riskMedium,
		RiskHighFRP:   riskHigh,
		LogLevel:      envOrDefault("LOG_LEVEL", "warn"),
		LogFormat:     envOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.FIRMSMapKey == "" {
		return nil, errors.New("FIRMS_MAP_KEY is required (request one at https://firms.modaps.eosdis.nasa.gov/api/)")
	}
	if cfg.FIRMSTimeout <= 0 {
		return nil, errors.New("FIRMS_TIMEOUT must be positive")
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New("FIRMS_SOURCES must name at least one source")
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 100 {
		return nil, errors.New("MIN_CONFIDENCE must be in [0,100]")
	}
	if cfg.RiskMediumFRP <= 0 || cfg.RiskMediumFRP >= cfg.RiskHighFRP {
		return nil, errors.New("risk thresholds must satisfy 0 < RISK_FRP_MEDIUM < RISK_FRP_HIGH")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func parseSources(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
