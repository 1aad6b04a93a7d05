package config

import "errors"

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrReadingFile   = errors.New("failed to read config file")

	ErrMissingAPIKey    = errors.New("api key is required")
	ErrInvalidBaseURL   = errors.New("base URL must be an absolute http(s) URL")
	ErrInvalidTimeout   = errors.New("timeout must be positive")
	ErrInvalidRateLimit = errors.New("rate limit must not be negative")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidLogFormat = errors.New("log format must be json or text")
)
