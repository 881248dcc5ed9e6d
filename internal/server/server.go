package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/niteowll/SnoozeTabs/common"
)

// Server manages op requests from UI clients over a unix socket. It
// dispatches each request to the registered handler and owns the wake
// subscriber pool. The companion WebServer carries the JSON-RPC bridge for
// the browser extension.
type Server struct {
	log      *log.Logger
	pool     *Pool
	ws       *WebServer
	handler  map[common.OpType]HandlerFunc
	port     int
	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a Server dispatching to handlers registered later. The
// unix socket is the primary transport, falling back to TCP on port if the
// socket cannot be created; the web bridge listens on port+1.
func NewServer(l *log.Logger, rpc *RPCServer, port int) *Server {
	pool := NewPool(l)
	return &Server{
		log:     l,
		pool:    pool,
		handler: make(map[common.OpType]HandlerFunc),
		port:    port,
		ws:      NewWebServer(l, rpc, port+1),
	}
}

// Pool exposes the wake subscriber pool for broadcast by the wake handler.
func (s *Server) Pool() *Pool {
	return s.pool
}

// RegisterHandler associates a handler with an op name.
func (s *Server) RegisterHandler(op common.OpType, handler HandlerFunc) {
	s.handler[op] = handler
}

func (s *Server) createListener() (net.Listener, error) {
	socketPath := socketPath()
	_ = os.Remove(socketPath)
	l, err := net.Listen("unix", socketPath)
	if err != nil {
		s.log.Println("Error occurred while using unix socket:", err.Error())
		s.log.Println("Trying to use tcp socket")
		tcpListener, tcpErr := net.Listen("tcp", fmt.Sprintf("%s:%d", common.TCPHost, s.port))
		if tcpErr != nil {
			return nil, fmt.Errorf("error listening: %s", tcpErr.Error())
		}
		return tcpListener, nil
	}
	_ = os.Chmod(socketPath, 0666)
	return l, nil
}

// Start begins listening and blocks until the context is canceled. Each
// connection is handled in its own goroutine.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.ws.Start(); err != nil {
			s.log.Println("Web bridge stopped:", err.Error())
		}
	}()

	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Println("Error accepting:", err.Error())
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown closes the listener, the web bridge, and removes the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Printf("Error closing listener: %v", err)
		}
		s.listener = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.ws.Shutdown(shutdownCtx); err != nil {
		s.log.Printf("Error shutting down web bridge: %v", err)
	}

	socketPath := socketPath()
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		s.log.Printf("Error removing socket file: %v", err)
	}
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	sconn := NewSyncConn(conn)
	defer func() {
		s.pool.Unsubscribe(sconn)
		conn.Close()
	}()
	for {
		buf, err := sconn.Read()
		if err != nil {
			if err != io.EOF {
				s.log.Println("Error reading:", err.Error())
			}
			break
		}
		if err := s.handlerWrapper(sconn, buf); err != nil {
			s.log.Println("Error handling:", err.Error())
			break
		}
	}
}

func (s *Server) handlerWrapper(sconn *SyncConn, b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return fmt.Errorf("error parsing request: %s", err.Error())
	}
	rHandler, ok := s.handler[req.Op]
	if !ok {
		// Unknown ops are ignored, not failed: the UI layer may be newer
		// than the daemon.
		s.log.Println("ignoring unknown op:", string(req.Op))
		if err := sconn.Write(MakeResult(req.Op, nil)); err != nil {
			return fmt.Errorf("error writing response: %s", err.Error())
		}
		return nil
	}
	op, msg, err := rHandler(sconn, s.pool, req.Message)
	if err != nil {
		if werr := sconn.Write(InitError(err)); werr != nil {
			return fmt.Errorf("error writing response: %s", werr.Error())
		}
		return nil
	}
	if err := sconn.Write(MakeResult(op, msg)); err != nil {
		return fmt.Errorf("error writing response: %s", err.Error())
	}
	return nil
}
