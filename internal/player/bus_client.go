package player

import (
	"github.com/godbus/dbus/v5"
)

// BusClient defines the interface for session-bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/bus_client_mock.go -package=mocks github.com/genricoloni/spotbar/internal/player BusClient
type BusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// NameHasOwner reports whether the given well-known name is
	// currently owned on the bus
	NameHasOwner(name string) (bool, error)

	// GetProperty retrieves a property from a D-Bus object
	// dest: The bus name (e.g., "org.mpris.MediaPlayer2.spotify")
	// path: The object path (e.g., "/org/mpris/MediaPlayer2")
	// prop: The property name (e.g., "org.mpris.MediaPlayer2.Player.Metadata")
	GetProperty(dest, path, prop string) (dbus.Variant, error)
}

// SessionBusClient is the real implementation using godbus
type SessionBusClient struct {
	conn *dbus.Conn
}

// NewSessionBusClient creates a real D-Bus client connected to the session bus
func NewSessionBusClient() (*SessionBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *SessionBusClient) Close() error {
	return c.conn.Close()
}

// NameHasOwner reports whether the given well-known name is owned
func (c *SessionBusClient) NameHasOwner(name string) (bool, error) {
	var has bool
	err := c.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&has)
	return has, err
}

// GetProperty retrieves a property from a D-Bus object
func (c *SessionBusClient) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.GetProperty(prop)
}
