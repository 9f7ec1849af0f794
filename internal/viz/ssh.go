package viz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
)

// ServerConfig holds configuration for the SSH server.
type ServerConfig struct {
	// Address is the host:port to listen on, e.g. ":23235".
	Address string

	// HostKeyPath is the path to the host key file. Wish generates one there
	// if it does not exist. Empty means ~/.maxwell/host_key.
	HostKeyPath string

	IdleTimeout time.Duration

	// Base seeds every session's preset menu.
	Base Options
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Base:        DefaultOptions(),
	}
}

// Server serves the preset menu and live view over SSH, one program per
// session. Every session gets its own wheel.
type Server struct {
	config ServerConfig
	server *ssh.Server
	logger *log.Logger
}

func NewServer(cfg ServerConfig, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("viz: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".maxwell", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("viz: cannot create host key directory: %w", err)
	}

	srv := &Server{config: cfg, logger: logger}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("viz: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sess.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	opts := s.config.Base
	// exports from concurrent sessions must not overwrite each other
	opts.PlotsDir = sessionPlotsDir(opts.PlotsDir, sess.User(), time.Now())
	opts.Logger = s.logger.With("user", sess.User())

	return NewApp(opts), []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionPlotsDir places a session's exports under base. The SSH user name is
// chosen by the client, so only [A-Za-z0-9_-] survive from it.
func sessionPlotsDir(base, user string, at time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, filepath.Base(user))
	if len(name) > 32 {
		name = name[:32]
	}
	if name == "" {
		name = "anon"
	}
	return filepath.Join(base, name, at.Format("20060102-150405"))
}

func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String())
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) Addr() string { return s.config.Address }
