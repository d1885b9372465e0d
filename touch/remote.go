package touch

import (
	"fmt"
	"image"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message is a sample sent by a remote touch client.
type Message struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Down bool `json:"down"`
}

// Point returns the coordinate of m. Coordinates outside 0..65535 are an ErrSyntax, as in ParseLine.
func (m Message) Point() (image.Point, error) {
	if m.X < 0 || m.X > maxCoord || m.Y < 0 || m.Y > maxCoord {
		return image.Point{}, fmt.Errorf("point %d,%d: %w", m.X, m.Y, ErrSyntax)
	}
	return image.Pt(m.X, m.Y), nil
}

// Remote is an http.Handler that accepts websocket connections and feeds their messages into Contact.
// The contact is released when a connection ends.
type Remote struct {
	Contact *Contact
	Log     *slog.Logger

	upgrader websocket.Upgrader
}

// NewRemote returns a handler feeding c. Connections from any origin are accepted.
func NewRemote(c *Contact) *Remote {
	return &Remote{
		Contact: c,
		Log:     slog.Default(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (rm *Remote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rm.Log.Warn("websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	defer rm.Contact.Release()

	rm.Log.Info("remote touch connected", "remote", r.RemoteAddr)
	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				rm.Log.Warn("remote touch read", "remote", r.RemoteAddr, "error", err)
			}
			rm.Log.Info("remote touch disconnected", "remote", r.RemoteAddr)
			return
		}
		if m.Down {
			p, err := m.Point()
			if err != nil {
				rm.Log.Warn("skipping remote touch", "remote", r.RemoteAddr, "error", err)
				continue
			}
			rm.Contact.Set(p)
		} else {
			rm.Contact.Release()
		}
	}
}
