package touch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.bug.st/serial"
)

// Serial is a touch controller on a serial port that writes one sample line per event.
type Serial struct {
	Path string

	port      serial.Port
	closeOnce sync.Once
}

// OpenSerial opens the port at path with baud rate baud, 8N1.
func OpenSerial(path string, baud int) (*Serial, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", path, err)
	}
	return &Serial{Path: path, port: port}, nil
}

// Run feeds samples into c until ctx is done or the port fails. The port is closed when Run returns.
func (s *Serial) Run(ctx context.Context, c *Contact) error {
	stop := context.AfterFunc(ctx, func() {
		if err := s.Close(); err != nil {
			slog.Error("closing serial port", "path", s.Path, "error", err)
		}
	})
	defer stop()
	defer s.Close()

	slog.Info("reading touch samples", "path", s.Path)
	err := Feed(ctx, s.port, c)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Close closes the port. It can be called more than once.
func (s *Serial) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.port.Close()
	})
	return err
}
