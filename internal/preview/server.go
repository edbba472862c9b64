// Package preview serves live transpilation over a websocket: every text
// message is a TypeScript source and every reply is the generated MoonBit.
package preview

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/generator"
	"github.com/calumari/ts2mbt/internal/tsast"
)

const (
	// maxMessageSize caps one TypeScript source.
	maxMessageSize = 1 << 20
	shutdownGrace  = 5 * time.Second
	sourceName     = "preview.ts"
)

// Response is the JSON reply to one source message. Error is set when the
// source had syntax errors; Code still holds what could be generated.
type Response struct {
	Code    string   `json:"code"`
	Enums   []string `json:"enums"`
	Aliases []string `json:"aliases"`
	Error   string   `json:"error"`
}

// Server is the preview websocket server.
type Server struct {
	mode     tsast.Mode
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithMode selects the traversal mode used for every message.
func WithMode(m tsast.Mode) Option {
	return func(s *Server) { s.mode = m }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		log: zap.NewNop().Sugar(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("/ws", s.HandleWebSocket)
	return s
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		s.log.Infow("preview server listening", "addr", addr, "endpoint", "/ws")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown preview server")
		}
		return nil
	}
}

// HandleWebSocket upgrades the request and answers each message until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorw("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	s.log.Debugw("preview client connected", "remote", r.RemoteAddr)

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warnw("preview client read failed", "remote", r.RemoteAddr, "error", err)
			}
			return
		}
		var resp Response
		if kind != websocket.TextMessage {
			resp = Response{Enums: []string{}, Aliases: []string{}, Error: "expected a text message with TypeScript source"}
		} else {
			resp = s.Transpile(r.Context(), msg)
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warnw("preview reply failed", "remote", r.RemoteAddr, "error", err)
			return
		}
	}
}

// Transpile converts one source into a Response.
func (s *Server) Transpile(ctx context.Context, src []byte) Response {
	res, err := generator.TranspileSource(ctx, sourceName, src,
		generator.WithMode(s.mode), generator.WithLogger(s.log))
	resp := Response{Code: res.Code, Enums: res.Enums, Aliases: res.Aliases}
	if resp.Enums == nil {
		resp.Enums = []string{}
	}
	if resp.Aliases == nil {
		resp.Aliases = []string{}
	}
	if err != nil {
		resp.Error = err.Error()
		if !generator.IsSyntaxError(err) {
			s.log.Errorw("preview transpile failed", "error", err)
		}
	}
	return resp
}

// checkOrigin admits clients without an Origin header and browsers on
// localhost.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, prefix := range []string{"http://localhost", "https://localhost", "http://127.0.0.1", "https://127.0.0.1"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
