// Package config loads client settings from the environment, an optional
// .env file, or a YAML file.
//
// Environment variables:
//
//	PAYMILL_API_KEY      private API key (required)
//	PAYMILL_BASE_URL     API root, default https://api.paymill.com/v2.1
//	PAYMILL_TIMEOUT      per-request timeout, default 30s
//	PAYMILL_RATE_LIMIT   requests per second, 0 disables throttling
//	PAYMILL_RATE_BURST   burst size for the rate limit, default 1
//	PAYMILL_USER_AGENT   User-Agent header override
//	PAYMILL_LOG_LEVEL    debug, info, warn or error (default info)
//	PAYMILL_LOG_FORMAT   json or text (default json)
//
// Load reads .env (when present) and then the environment. LoadFile reads a
// YAML document with the same keys in snake case and lets the environment
// override it:
//
//	cfg, err := config.LoadFile("paymill.yaml")
//	if err != nil {
//		return err
//	}
//
// Both validate the result; an invalid configuration is never returned.
package config
