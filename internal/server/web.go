package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
)

// WebServer hosts the JSON-RPC surface for the browser extension: the
// stateless HTTP bridge at /rpc and the stateful WebSocket endpoint at /ws.
// Both require the shared bearer token.
type WebServer struct {
	port   int
	l      *log.Logger
	rpc    *RPCServer
	server *http.Server
	mu     sync.Mutex
}

func NewWebServer(l *log.Logger, rpc *RPCServer, port int) *WebServer {
	return &WebServer{port: port, l: l, rpc: rpc}
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/rpc", requireToken(s.rpc.secret, s.rpc.bridge))
	mux.Handle("/ws", requireToken(s.rpc.secret, http.HandlerFunc(s.rpc.serveWS)))
	return mux
}

func (s *WebServer) addr() string {
	return fmt.Sprintf("127.0.0.1:%d", s.port)
}

func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr(),
		Handler: s.handler(),
	}
	s.mu.Unlock()

	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the web server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
