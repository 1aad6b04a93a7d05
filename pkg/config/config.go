package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/paymill/pkg/logger"
	"github.com/dmitrymomot/paymill/pkg/transport"
)

// Config holds everything needed to build a client.
type Config struct {
	APIKey    string        `env:"PAYMILL_API_KEY" yaml:"api_key"`
	BaseURL   string        `env:"PAYMILL_BASE_URL" yaml:"base_url"`
	Timeout   time.Duration `env:"PAYMILL_TIMEOUT" yaml:"timeout"`
	RateLimit float64       `env:"PAYMILL_RATE_LIMIT" yaml:"rate_limit"`
	RateBurst int           `env:"PAYMILL_RATE_BURST" yaml:"rate_burst"`
	UserAgent string        `env:"PAYMILL_USER_AGENT" yaml:"user_agent"`
	LogLevel  string        `env:"PAYMILL_LOG_LEVEL" yaml:"log_level"`
	LogFormat string        `env:"PAYMILL_LOG_FORMAT" yaml:"log_format"`
}

// Default returns the configuration used for unset values.
func Default() Config {
	return Config{
		BaseURL:   transport.DefaultBaseURL,
		Timeout:   30 * time.Second,
		RateBurst: 1,
		LogLevel:  "info",
		LogFormat: string(logger.FormatJSON),
	}
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if c.RateLimit < 0 {
		errs = append(errs, ErrInvalidRateLimit)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch logger.Format(strings.ToLower(c.LogFormat)) {
	case logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat))
	}

	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return l, nil
}

// TransportOptions translates the config into transport options.
func (c Config) TransportOptions() []transport.Option {
	opts := []transport.Option{
		transport.WithBaseURL(c.BaseURL),
		transport.WithTimeout(c.Timeout),
		transport.WithUserAgent(c.UserAgent),
	}
	if c.RateLimit > 0 {
		opts = append(opts, transport.WithRateLimit(rate.Limit(c.RateLimit), c.RateBurst))
	}
	return opts
}

// Logger builds a logger with the configured level and format.
func (c Config) Logger(opts ...logger.Option) *slog.Logger {
	level, _ := c.Level()
	base := []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(strings.ToLower(c.LogFormat))),
		logger.WithContextExtractors(transport.RequestIDExtractor()),
	}
	return logger.New(append(base, opts...)...)
}
