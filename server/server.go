// Package server exposes a live engine over a line-delimited JSON TCP
// protocol. One request per line, one response per line; the
// connection stays open across requests.
package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/veleiro/marionette/engine"
)

var log = commonlog.GetLogger("marionette.server")

// DefaultAddr is where the bridge listens unless configured otherwise.
const DefaultAddr = "127.0.0.1:55557"

// maxLineBytes bounds a single request line. Graph payloads are small;
// 4 MiB leaves generous headroom.
const maxLineBytes = 4 << 20

// request is the wire shape of one command. Older clients send the
// command name under "command", newer ones under "type"; both are
// accepted.
type request struct {
	Type    string          `json:"type"`
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params"`
}

func (r *request) name() string {
	if r.Type != "" {
		return r.Type
	}
	return r.Command
}

// response is the outer envelope every reply uses.
type response struct {
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server owns the listener, the accept loop and the engine worker.
type Server struct {
	registry *Registry
	worker   *EngineWorker
	timeout  time.Duration

	mu       sync.Mutex
	listener net.Listener
	conn     net.Conn
	done     chan struct{}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithCommandTimeout bounds how long the connection loop waits for a
// command to finish. Zero disables the bound. A timed-out command
// still runs to completion on the engine goroutine; only the client
// stops waiting.
func WithCommandTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.timeout = d }
}

// New creates a Server wrapping the given engine, with the builtin
// command set registered. Panics if the builtin set fails to
// register; that is a wiring bug, not a runtime condition.
func New(e *engine.Engine, opts ...ServerOption) *Server {
	s := &Server{
		registry: NewRegistry(),
		worker:   NewEngineWorker(e),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry.MustRegister(builtinCommands())
	return s
}

// Registry exposes the command registry (for embedding code that adds
// commands before Start).
func (s *Server) Registry() *Registry { return s.registry }

// Worker exposes the engine worker.
func (s *Server) Worker() *EngineWorker { return s.worker }

// Start binds addr and begins accepting connections. Bind failures
// are returned synchronously; accept errors after that only end the
// loop when the listener is closed.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	s.mu.Lock()
	if s.listener != nil {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server already started")
	}
	s.listener = ln
	s.done = make(chan struct{})
	s.mu.Unlock()

	log.Infof("listening on %s", ln.Addr())
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// acceptLoop serves connections one at a time. Commands mutate one
// shared engine; serving serially keeps connection arrival from
// interleaving with an open session's command stream.
func (s *Server) acceptLoop(ln net.Listener) {
	defer close(s.done)
	for {
		conn, err := ln.Accept()
		if err != nil {
			// Closed listener means Stop was called.
			log.Debugf("accept loop ending: %v", err)
			return
		}
		log.Infof("client connected: %s", conn.RemoteAddr())
		s.serveConn(conn)
		log.Infof("client disconnected: %s", conn.RemoteAddr())
	}
}

// serveConn runs the request/response loop for one connection. Every
// fault inside a command turns into an error envelope; only transport
// failures end the loop.
func (s *Server) serveConn(conn net.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := s.handleLine(line)
		if err := writeResponse(writer, resp); err != nil {
			log.Errorf("write response: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debugf("connection read: %v", err)
	}
}

// handleLine decodes, dispatches and wraps one request. It never
// returns a transport error; malformed input is a client fault and
// gets an error envelope like any other.
func (s *Server) handleLine(line []byte) response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(fmt.Errorf("invalid JSON: %w", err))
	}
	name := req.name()
	if name == "" {
		return errorResponse(errors.New("request has no command name"))
	}

	var params Params
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(fmt.Errorf("invalid params object: %w", err))
		}
	}

	log.Debugf("dispatch %s", name)
	result, err := s.dispatch(name, params)
	if err != nil {
		if IsClientError(err) {
			log.Infof("command %s rejected: %v", name, err)
		} else {
			log.Errorf("command %s failed: %v", name, err)
		}
		return errorResponse(err)
	}
	return response{Status: "success", Result: result}
}

// dispatch routes through the registry, applying the command timeout
// when one is configured.
func (s *Server) dispatch(name string, params Params) (any, error) {
	if s.timeout <= 0 {
		return s.registry.Dispatch(s.worker, name, params)
	}

	type outcome struct {
		value any
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := s.registry.Dispatch(s.worker, name, params)
		ch <- outcome{v, err}
	}()
	select {
	case o := <-ch:
		return o.value, o.err
	case <-time.After(s.timeout):
		return nil, fmt.Errorf("command %s timed out after %s", name, s.timeout)
	}
}

func errorResponse(err error) response {
	return response{Status: "error", Error: err.Error()}
}

func writeResponse(w *bufio.Writer, resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		// Result values are built from JSON-safe types; failing to
		// re-encode one is a handler bug.
		data, _ = json.Marshal(errorResponse(fmt.Errorf("encode response: %v", err)))
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

// Stop closes the listener, waits for the accept loop to end and
// stops the engine worker. Calling Stop again is harmless.
func (s *Server) Stop() {
	s.mu.Lock()
	ln := s.listener
	conn := s.conn
	done := s.done
	s.listener = nil
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if ln != nil {
		ln.Close()
		<-done
	}
	s.worker.Stop()
}
