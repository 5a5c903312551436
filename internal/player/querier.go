package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/spotbar/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	// SpotifyBusName is the well-known name the querier targets by default
	SpotifyBusName = "org.mpris.MediaPlayer2.spotify"

	mediaObjectPath  = "/org/mpris/MediaPlayer2"
	metadataProperty = "org.mpris.MediaPlayer2.Player.Metadata"

	titleKey  = "xesam:title"
	artistKey = "xesam:artist"
)

// serviceUnknownError is raised by the bus daemon when the destination
// name has no owner; the player can vanish between the ownership check
// and the property get.
const serviceUnknownError = "org.freedesktop.DBus.Error.ServiceUnknown"

// MprisQuerier fetches the currently playing track from a single MPRIS
// player over the session bus
type MprisQuerier struct {
	logger  *zap.Logger
	conn    BusClient // Interface for testability
	busName string
}

// NewMprisQuerier creates a querier bound to the given well-known bus
// name. An empty busName targets the Spotify player.
func NewMprisQuerier(conn BusClient, busName string, logger *zap.Logger) *MprisQuerier {
	if busName == "" {
		busName = SpotifyBusName
	}
	return &MprisQuerier{
		logger:  logger,
		conn:    conn,
		busName: busName,
	}
}

// NowPlaying implements domain.Querier. It returns (nil, nil) when the
// player is not on the bus or has no track loaded, and an error only
// for transport failures or malformed replies.
func (q *MprisQuerier) NowPlaying(ctx context.Context) (*domain.TrackMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	has, err := q.conn.NameHasOwner(q.busName)
	if err != nil {
		return nil, fmt.Errorf("bus name lookup failed: %w", err)
	}
	if !has {
		q.logger.Debug("Player not running", zap.String("busName", q.busName))
		return nil, nil
	}

	variant, err := q.conn.GetProperty(q.busName, mediaObjectPath, metadataProperty)
	if err != nil {
		var dbusErr dbus.Error
		if errors.As(err, &dbusErr) && dbusErr.Name == serviceUnknownError {
			q.logger.Debug("Player left the bus during query",
				zap.String("busName", q.busName))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	// SAFE CAST: Some players may return nil or unexpected types if not playing anything
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("metadata is not a property map (got %T)", variant.Value())
	}

	return q.parseMetadata(metadata), nil
}

// parseMetadata converts an MPRIS property map to the domain model.
// A missing or empty title means no track is loaded, so nil is
// returned rather than a half-empty record.
func (q *MprisQuerier) parseMetadata(metadata map[string]dbus.Variant) *domain.TrackMetadata {
	var meta domain.TrackMetadata

	if titleVar, ok := metadata[titleKey]; ok {
		if title, ok := titleVar.Value().(string); ok {
			meta.Title = title
		}
	}
	if meta.Title == "" {
		return nil
	}

	// Artist is an array per the MPRIS spec, but non-compliant players
	// send a bare string or a variant slice
	if artistVar, ok := metadata[artistKey]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			meta.Artists = artists
		case string:
			if artists != "" {
				meta.Artists = []string{artists}
			}
		case []interface{}:
			for _, a := range artists {
				if s, ok := a.(string); ok && s != "" {
					meta.Artists = append(meta.Artists, s)
				}
			}
		default:
			q.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	return &meta
}
