package pkg

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/time/rate"

	"github.com/qnkhuat/weetris/pkg/config"
)

// Server serves the terminal client over SSH. Every session runs its own
// client process inside a pseudo-terminal.
type Server struct {
	*ssh.Server

	Binary     string
	ConfigPath string // Passed on to the client processes

	limiter *rate.Limiter
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]string // Session id to player name
}

func NewServer(cfg config.ServerConfig, configPath string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	limit := rate.Inf
	if cfg.SessionsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.SessionsPerMinute))
	}

	s := &Server{
		Binary:     cfg.Binary,
		ConfigPath: configPath,
		limiter:    rate.NewLimiter(limit, cfg.SessionBurst),
		logger:     logger,
		sessions:   make(map[string]string),
	}

	s.Server = &ssh.Server{
		Addr:        cfg.Listen,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if cfg.HostKey != "" {
		path, err := expandHome(cfg.HostKey)
		if err != nil {
			return nil, err
		}
		if err := s.SetOption(ssh.HostKeyFile(path)); err != nil {
			return nil, fmt.Errorf("load host key: %w", err)
		}
	}

	return s, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home dir: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// Sessions returns the number of players connected.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := petname.Generate(3, "-")
	for s.sessions[id] != "" {
		id = petname.Generate(3, "-")
	}
	s.sessions[id] = name
	return id
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// command builds the client process for one session.
func (s *Server) command(ctx context.Context, name, termName string) *exec.Cmd {
	args := []string{"--name", name}
	if s.ConfigPath != "" {
		args = append(args, "--config", s.ConfigPath)
	}

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", termName))
	return cmd
}

func (s *Server) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start weetris: non-interactive terminals are not supported\n")
		sshSession.Exit(1)
		return
	}

	if !s.limiter.Allow() {
		io.WriteString(sshSession, "failed to start weetris: too many new sessions, try again later\n")
		s.logger.Warn("rate limited", "remote", sshSession.RemoteAddr())
		sshSession.Exit(1)
		return
	}

	name := Nickname(sshSession.User())
	id := s.addSession(name)
	defer s.removeSession(id)

	logger := s.logger.With("session", id, "player", name)
	logger.Info("session started", "remote", sshSession.RemoteAddr(), "term", ptyReq.Term, "sessions", s.Sessions())

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.command(cmdCtx, name, ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		logger.Error("failed to start client", "err", err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sshSession.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				logger.Debug("failed to resize", "err", err)
			}
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		logger.Debug("client exited", "err", err)
	}
	logger.Info("session ended")
}
