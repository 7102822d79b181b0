// Package config reads application configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"easywealth/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("EASYWEALTH_")
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayFloat64 returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayFloat64(key string, def float64) float64 {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Float64("default", def).Msg("invalid float64; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayPort returns an addr like ":8080"; out of range or malformed values fall back to def
func (c Conf) MayPort(key string, def int) string {
	p := c.MayInt(key, def)
	if p < 1 || p > 65535 {
		logger.Get().Warn().Str("key", c.key(key)).Int("value", p).Int("default", def).Msg("invalid TCP port; using default")
		p = def
	}
	return ":" + strconv.Itoa(p)
}

// Bounds overrides the calculator slider policy
type Bounds struct {
	ContributionMin float64
	ContributionMax float64
	RateMin         float64
	RateMax         float64
	YearsMin        int
	YearsMax        int
	WithdrawalMin   float64
	WithdrawalMax   float64
}

// App is the full service configuration
type App struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	GeminiAPIKey string
	GeminiModel  string
	UseMockLLM   bool

	SchemeRegistryURL     string
	SchemeRegistryTimeout time.Duration

	Bounds Bounds
}

// Load builds the App config from EASYWEALTH_* variables
func Load() App {
	c := New().Prefix("EASYWEALTH_")
	b := c.Prefix("BOUNDS_")

	apiKey := c.MayString("GEMINI_API_KEY", os.Getenv("GEMINI_API_KEY"))

	return App{
		Addr:         c.MayPort("PORT", 8080),
		ReadTimeout:  c.MayDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: c.MayDuration("WRITE_TIMEOUT", 60*time.Second),

		GeminiAPIKey: apiKey,
		GeminiModel:  c.MayString("GEMINI_MODEL", "gemini-2.5-flash"),
		UseMockLLM:   c.MayBool("USE_MOCK_LLM", apiKey == ""),

		SchemeRegistryURL:     strings.TrimRight(c.MayString("SCHEME_REGISTRY_URL", ""), "/"),
		SchemeRegistryTimeout: c.MayDuration("SCHEME_REGISTRY_TIMEOUT", 2*time.Second),

		Bounds: Bounds{
			ContributionMin: b.MayFloat64("CONTRIBUTION_MIN", 500),
			ContributionMax: b.MayFloat64("CONTRIBUTION_MAX", 100000),
			RateMin:         b.MayFloat64("RATE_MIN", 5),
			RateMax:         b.MayFloat64("RATE_MAX", 30),
			YearsMin:        b.MayInt("YEARS_MIN", 1),
			YearsMax:        b.MayInt("YEARS_MAX", 40),
			WithdrawalMin:   b.MayFloat64("WITHDRAWAL_MIN", 2),
			WithdrawalMax:   b.MayFloat64("WITHDRAWAL_MAX", 6),
		},
	}
}
