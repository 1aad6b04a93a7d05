// Package logger builds the *slog.Logger used by the API client and provides
// attribute helpers that keep field names consistent across packages.
//
// New returns a logger configured through functional options. Registered
// ContextExtractor callbacks run on every handled record, so request-scoped
// values stored in a context.Context (such as the outgoing request id)
// appear in each log line.
//
// Discard returns a logger that drops everything; library components default
// to it and stay silent unless the caller passes a logger.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithContextExtractors(transport.RequestIDExtractor()),
//	)
//
//	log.DebugContext(ctx, "subscription paused",
//	    logger.Resource("subscriptions"),
//	    logger.ResourceID(sub.ID),
//	)
//
// Helper constructors such as Error return an empty attribute for nil input,
// so they can be passed unconditionally.
package logger
