package assetcdn

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// AssetIngested does nothing and returns nil
func (n *NoopEventSink) AssetIngested(ctx context.Context, asset *Asset) error {
	return nil
}

// AssetDownloaded does nothing and returns nil
func (n *NoopEventSink) AssetDownloaded(ctx context.Context, asset *Asset, notModified bool) error {
	return nil
}

// VersionPublished does nothing and returns nil
func (n *NoopEventSink) VersionPublished(ctx context.Context, version *AssetVersion) error {
	return nil
}

// LoggingEventSink writes structured log lines for each event
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink backed by the given logger.
// A nil logger falls back to slog.Default.
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) AssetIngested(ctx context.Context, asset *Asset) error {
	l.logger.InfoContext(ctx, "asset ingested",
		"asset_id", asset.ID.String(),
		"storage_key", asset.StorageKey,
		"size_bytes", asset.SizeBytes,
		"is_private", asset.IsPrivate)
	return nil
}

func (l *LoggingEventSink) AssetDownloaded(ctx context.Context, asset *Asset, notModified bool) error {
	l.logger.InfoContext(ctx, "asset downloaded",
		"asset_id", asset.ID.String(),
		"not_modified", notModified)
	return nil
}

func (l *LoggingEventSink) VersionPublished(ctx context.Context, version *AssetVersion) error {
	l.logger.InfoContext(ctx, "version published",
		"asset_id", version.AssetID.String(),
		"version_id", version.ID.String(),
		"version_label", version.VersionLabel)
	return nil
}
