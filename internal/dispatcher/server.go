package dispatcher

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/frakt-go/frakt/internal/log"
	"github.com/frakt-go/frakt/internal/protocol"
)

// Server binds the dispatcher's TCP listener and fans accepted connections
// into a single State actor, grounded on the accept-loop/graceful-shutdown
// shape of internal/command's UDSServer, adapted to the fractal renderer's
// one-request-or-one-result-per-connection contract.
type Server struct {
	addr  string
	state *State

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	stopped  bool
}

// NewServer constructs a dispatcher TCP server bound to addr (host:port),
// backed by state.
func NewServer(addr string, state *State) *Server {
	return &Server{
		addr:  addr,
		state: state,
		conns: make(map[net.Conn]struct{}),
	}
}

// Run binds the listener, starts the actor and accept loop, and blocks until
// ctx is cancelled. It returns a bind error immediately if the listener
// cannot be created.
func (s *Server) Run(ctx context.Context) error {
	logger := log.GetLogger()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dispatcher: binding %s: %w", s.addr, err)
	}
	s.listener = listener
	logger.Infof("dispatcher: listening on %s", s.addr)

	go s.state.Run()
	go s.acceptLoop(ctx)

	<-ctx.Done()
	logger.Infof("dispatcher: shutting down (%v)", ctx.Err())
	return s.stop()
}

func (s *Server) acceptLoop(ctx context.Context) {
	logger := log.GetLogger()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			stopped := s.stopped
			s.mu.Unlock()
			if stopped {
				return
			}
			logger.WithError(err).Warn("dispatcher: accept failure, continuing")
			continue
		}

		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn implements the per-connection handler contract: read one framed
// message, forward it to the actor, block for exactly one reply, write that
// reply, close the socket.
func (s *Server) handleConn(conn net.Conn) {
	logger := log.GetLogger()
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	fragment, payload, err := protocol.Read(conn)
	if err != nil {
		logger.WithError(err).Debug("dispatcher: framing violation or I/O error, dropping connection")
		return
	}

	if fragment.Request == nil && fragment.Result == nil {
		logger.Warnf("dispatcher: dropping unsupported fragment variant %q", fragment.Variant())
		return
	}

	replyFragment, replyPayload := s.state.Submit(fragment, payload)
	if replyFragment.Task == nil {
		return
	}

	if err := protocol.Send(conn, replyFragment, replyPayload); err != nil {
		logger.WithError(err).Warn("dispatcher: writing reply failed")
	}
}

func (s *Server) stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
