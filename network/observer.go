package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
)

// ObserverServer streams settled world frames to loopback websocket clients
// It is a read-only collaborator: nothing received from clients reaches the simulation
type ObserverServer struct {
	runID  string
	extent float32
	maxFPS int
	logger *zap.Logger

	upgrader websocket.Upgrader
	limiter  *rate.Limiter

	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID atomic.Uint64

	framesSent    atomic.Uint64
	framesDropped atomic.Uint64

	srv      *http.Server
	listener net.Listener
}

type subscriber struct {
	id  uint64
	out chan []byte
}

// NewObserverServer creates a server; maxFPS <= 0 uses the default rate
func NewObserverServer(runID string, extent float32, maxFPS int, logger *zap.Logger) *ObserverServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxFPS <= 0 {
		maxFPS = parameter.ObserverMaxFPS
	}
	return &ObserverServer{
		runID:  runID,
		extent: extent,
		maxFPS: maxFPS,
		logger: logger.Named("observer"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // loopback only, see ServeHTTP
		},
		limiter: rate.NewLimiter(rate.Limit(maxFPS), 1),
		subs:    make(map[uint64]*subscriber),
	}
}

// Handler returns the HTTP routes: /ws for the stream, /healthz for liveness
func (s *ObserverServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(map[string]any{
			"run_id":      s.runID,
			"subscribers": s.Subscribers(),
			"frames_sent": s.framesSent.Load(),
		})
	})
	return mux
}

// Start listens on addr and serves in the background
func (s *ObserverServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("observer listen %s: %w", addr, err)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	core.Go(func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("observer serve failed", zap.Error(err))
		}
	})
	s.logger.Info("observer listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address after Start
func (s *ObserverServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections and closes every session
func (s *ObserverServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, sub := range s.subs {
		close(sub.out)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Subscribers returns the number of connected sessions
func (s *ObserverServer) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// FramesDropped returns frames skipped for slow subscribers
func (s *ObserverServer) FramesDropped() uint64 {
	return s.framesDropped.Load()
}

// OnTick implements engine.TickObserver, throttled to maxFPS
func (s *ObserverServer) OnTick(snap engine.Snapshot) {
	if s.Subscribers() == 0 || !s.limiter.Allow() {
		return
	}
	s.Broadcast(snap)
}

// Broadcast encodes the snapshot once and queues it to every subscriber without blocking
func (s *ObserverServer) Broadcast(snap engine.Snapshot) {
	b, err := json.Marshal(NewFrame(snap))
	if err != nil {
		s.logger.Error("frame encode failed", zap.Error(err))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs {
		select {
		case sub.out <- b:
			s.framesSent.Add(1)
		default:
			// Slow client; the next frame supersedes this one
			s.framesDropped.Add(1)
		}
	}
}

func (s *ObserverServer) register() *subscriber {
	sub := &subscriber{
		id:  s.nextID.Add(1),
		out: make(chan []byte, parameter.ObserverSendBuffer),
	}
	s.mu.Lock()
	s.subs[sub.id] = sub
	s.mu.Unlock()
	return sub
}

func (s *ObserverServer) unregister(sub *subscriber) {
	s.mu.Lock()
	if _, ok := s.subs[sub.id]; ok {
		delete(s.subs, sub.id)
		close(sub.out)
	}
	s.mu.Unlock()
}

// ServeHTTP upgrades a loopback request and runs the session until either side closes
func (s *ObserverServer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	hello, err := json.Marshal(NewHello(s.runID, s.extent, s.maxFPS))
	if err != nil {
		return
	}
	sub := s.register()
	defer s.unregister(sub)
	log := s.logger.With(zap.Uint64("session", sub.id))
	log.Debug("observer joined", zap.String("remote", r.RemoteAddr))

	_ = conn.SetWriteDeadline(time.Now().Add(parameter.ObserverWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return
	}

	writeErr := make(chan error, 1)
	core.Go(func() {
		for b := range sub.out {
			_ = conn.SetWriteDeadline(time.Now().Add(parameter.ObserverWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				writeErr <- err
				return
			}
		}
		writeErr <- nil
	})

	// Reader only detects disconnects; client messages are ignored
	readDone := make(chan struct{})
	core.Go(func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	select {
	case <-readDone:
	case err := <-writeErr:
		if err != nil {
			log.Debug("observer write failed", zap.Error(err))
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
	log.Debug("observer left")
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
