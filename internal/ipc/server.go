package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

// Handler executes one command and returns the reply body.
type Handler interface {
	Handle(cmd Command) (string, error)
}

// Runner schedules fn on the thread that owns the window state, typically
// the GTK main loop.
type Runner func(fn func())

type Server struct {
	socketPath string
	handler    Handler
	run        Runner
	timeout    time.Duration
	listener   *net.UnixListener
	running    bool
	mu         sync.Mutex
	wg         sync.WaitGroup
}

func NewServer(socketPath string, handler Handler, run Runner) *Server {
	if run == nil {
		run = func(fn func()) { fn() }
	}
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		run:        run,
		timeout:    5 * time.Second,
	}
}

func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	// Remove existing socket file if it exists
	if _, err := os.Stat(s.socketPath); err == nil {
		os.Remove(s.socketPath)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	s.listener = listener.(*net.UnixListener)
	s.running = true

	log.Printf("[IPC] listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.AcceptUnix()
		if err != nil {
			if !s.isRunning() {
				return
			}
			log.Printf("[IPC] error accepting connection: %v", err)
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn *net.UnixConn) {
	defer s.wg.Done()
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(s.timeout))
	line, err := bufio.NewReader(io.LimitReader(conn, maxMessage)).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Printf("[IPC] error reading from connection: %v", err)
		return
	}

	message := strings.TrimSpace(line)
	if message == "" {
		return
	}
	log.Printf("[IPC] received: %s", message)

	reply, err := s.dispatch(Parse(message))
	if err != nil {
		log.Printf("[IPC] %s failed: %v", message, err)
		reply = errorPrefix + err.Error()
	}
	conn.SetWriteDeadline(time.Now().Add(s.timeout))
	if _, err := conn.Write([]byte(reply + "\n")); err != nil {
		log.Printf("[IPC] error writing reply: %v", err)
	}
}

type result struct {
	reply string
	err   error
}

func (s *Server) dispatch(cmd Command) (string, error) {
	return dispatch(s.run, s.handler, s.timeout, cmd)
}

// dispatch runs the handler through the runner and waits for its answer.
func dispatch(run Runner, h Handler, timeout time.Duration, cmd Command) (string, error) {
	done := make(chan result, 1)
	run(func() {
		reply, err := h.Handle(cmd)
		done <- result{reply, err}
	})

	select {
	case r := <-done:
		return r.reply, r.err
	case <-time.After(timeout):
		return "", ErrTimeout
	}
}

func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	if _, err := os.Stat(s.socketPath); err == nil {
		os.Remove(s.socketPath)
	}

	log.Println("[IPC] server stopped")
	return nil
}
