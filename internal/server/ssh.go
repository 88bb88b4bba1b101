package server

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/gliderlabs/ssh"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/explore"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

// SSHConfig holds SSH server configuration.
type SSHConfig struct {
	Addr    string
	HostKey string // PEM private key file
	Frame   explore.Options
}

// SSHServer runs one galaxy explorer per SSH connection.
type SSHServer struct {
	cfg    SSHConfig
	source catalog.Source
	server *ssh.Server
}

// NewSSHServer creates an SSH server whose sessions read the catalog from
// source.
func NewSSHServer(cfg SSHConfig, source catalog.Source) *SSHServer {
	return &SSHServer{cfg: cfg, source: source}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	s.server = &ssh.Server{
		Addr: s.cfg.Addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := s.server.SetOption(ssh.HostKeyFile(s.cfg.HostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.cfg.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for open sessions.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// streamPresenter writes each frame's diff to the client.
type streamPresenter struct {
	w io.Writer
}

func (p streamPresenter) Present(c *render.Canvas) error {
	out := c.Flush()
	if out == "" {
		return nil
	}
	_, err := io.WriteString(p.w, out)
	return err
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	// URLs cannot be opened on the client's machine; the session shows them
	// as hyperlinks in the HUD instead.
	session := explore.NewSession(explore.SessionConfig{
		Source:    s.source,
		Presenter: streamPresenter{w: sess},
		Cols:      ptyReq.Window.Width,
		Rows:      ptyReq.Window.Height,
		Frame:     s.cfg.Frame,
	})

	log.Printf("Viewer connected: %s (%s)", username, session.ID)
	defer log.Printf("Viewer disconnected: %s (%s)", username, session.ID)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	io.WriteString(sess, render.EnableMouse())
	io.WriteString(sess, render.EnableFocus())
	defer func() {
		io.WriteString(sess, render.DisableFocus())
		io.WriteString(sess, render.DisableMouse())
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	// Goroutine: read input
	go func() {
		defer cancel()
		buf := make([]byte, 256)
		var pending []byte
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			pending = append(pending, buf[:n]...)
			events, rest := parseInput(pending)
			pending = append([]byte(nil), rest...)
			for _, ev := range events {
				if ev.Action == explore.ActionQuit {
					return
				}
				session.Send(ev)
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			session.Send(explore.ResizeEvent(win.Width, win.Height))
		}
	}()

	if err := session.Run(ctx); err != nil {
		log.Printf("Session %s: %v", session.ID, err)
	}
}
