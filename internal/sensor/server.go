// Package sensor serves a phone page that streams device orientation over a
// websocket and forwards each sample as a racer tilt reading.
package sensor

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lane-rush/internal/racer"
)

//go:embed page.html
var page []byte

const (
	readLimit    = 4 << 10
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second
)

// Sample is one orientation message from the phone, in degrees.
type Sample struct {
	Roll  float64 `json:"roll" msgpack:"roll"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
}

// Sink receives readings. It is called from connection goroutines and
// must not block.
type Sink func(racer.Reading)

// Decode parses a websocket frame. Text frames carry JSON, binary frames
// carry msgpack of the same shape.
func Decode(messageType int, data []byte) (Sample, error) {
	var s Sample
	var err error
	switch messageType {
	case websocket.TextMessage:
		err = json.Unmarshal(data, &s)
	case websocket.BinaryMessage:
		err = msgpack.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("sensor: unsupported frame type %d", messageType)
	}
	if err != nil {
		return s, fmt.Errorf("sensor: decode sample: %w", err)
	}
	if !finite(s.Roll) || !finite(s.Pitch) {
		return s, errors.New("sensor: sample is not finite")
	}
	return s, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Server accepts tilt feeds.
type Server struct {
	ln       net.Listener
	srv      *http.Server
	sink     Sink
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New creates a server without binding a port. Use Handler to mount it.
func New(sink Sink, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		sink:   sink,
		logger: logger,
		upgrader: websocket.Upgrader{
			// The page is served by this process to phones on the local network.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Listen binds addr right away so the caller learns about failures before
// the game starts.
func Listen(addr string, sink Sink, logger *log.Logger) (*Server, error) {
	s := New(sink, logger)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("sensor: listen on %s: %w", addr, err)
	}
	s.ln = ln
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Serve blocks until Close. It returns nil after a clean shutdown.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("sensor: server is not listening")
	}
	s.logger.Info("tilt feed listening", "addr", s.Addr())
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("sensor: serve: %w", err)
	}
	return nil
}

// Close shuts the server down, waiting for handlers until ctx expires.
// Hijacked websocket connections are closed by their read deadlines.
func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the HTTP routes: the orientation page at / and the
// websocket at /tilt.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/tilt", s.handleTilt)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleTilt(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	s.logger.Info("tilt device connected", "remote", r.RemoteAddr)
	defer s.logger.Info("tilt device disconnected", "remote", r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(conn, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("tilt read failed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		sample, err := Decode(messageType, data)
		if err != nil {
			s.logger.Debug("dropping tilt frame", "err", err)
			continue
		}
		s.sink(racer.Reading{Roll: sample.Roll, Pitch: sample.Pitch, At: s.now()})
	}
}

func (s *Server) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
