package domain

import "context"

// Querier defines the interface for fetching the currently playing track
// Implementations should handle D-Bus/MPRIS communication
type Querier interface {
	// NowPlaying returns the metadata of the track currently loaded in
	// the player. It returns (nil, nil) when the player is not running
	// or has no track loaded, and a non-nil error only for transport
	// failures (bus unreachable, malformed reply). Callers are expected
	// to treat both outcomes as "nothing playing" for display purposes.
	NowPlaying(ctx context.Context) (*TrackMetadata, error)
}

// Formatter defines the interface for turning track metadata into the
// decorated status-line string
type Formatter interface {
	// Format renders metadata into a markup-decorated string. The
	// second return value is false when there is nothing to show
	// (nil metadata or an empty title).
	Format(meta *TrackMetadata) (string, bool)
}
