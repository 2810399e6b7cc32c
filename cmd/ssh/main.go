package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/roundbox/internal/config"
	"github.com/tomz197/roundbox/internal/draw"
	"github.com/tomz197/roundbox/internal/sandbox"
)

var cfg config.Config

func main() {
	var err error
	cfg, err = config.LoadOrDefault(config.GetEnv("ROUNDBOX_CONFIG", ""))
	if err != nil {
		log.Fatal("config error", "error", err)
	}
	host := config.GetEnv("SSH_HOST", cfg.SSH.Host)
	port := config.GetEnv("SSH_PORT", cfg.SSH.Port)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sandboxMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps input latency low for the interactive loop.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "error", err)
	}
}

// sandboxMiddleware runs an isolated sandbox world per SSH session.
func sandboxMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log.Info("new session",
			"user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		err := sandbox.Run(reader, sess, cfg, sandbox.Options{
			TermSize: sizeTracker.getSize,
		})
		if err != nil {
			log.Warn("session error", "user", sess.User(), "error", err)
		}

		log.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
