package explore

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

// Presenter puts a finished canvas in front of the user.
type Presenter interface {
	Present(c *render.Canvas) error
}

// Opener opens a URL for the user. Sessions without one show the URL in
// the HUD instead.
type Opener interface {
	Open(url string) error
}

// SessionConfig describes one explorer session.
type SessionConfig struct {
	Source     catalog.Source
	Presenter  Presenter
	Opener     Opener // optional
	Cols, Rows int    // initial terminal size
	Frame      Options
}

type loadResult struct {
	items []catalog.Item
	err   error
}

// Session runs the frame loop of one explorer: it fetches the catalog once,
// applies input between frames and presents each frame.
type Session struct {
	ID     string
	cfg    SessionConfig
	events chan InputEvent
}

// NewSession creates a session; call Run to start it.
func NewSession(cfg SessionConfig) *Session {
	return &Session{
		ID:     uuid.NewString(),
		cfg:    cfg,
		events: make(chan InputEvent, InputChanSize),
	}
}

// Send queues an input event for the next frame. Events are dropped when
// the queue is full.
func (s *Session) Send(ev InputEvent) {
	select {
	case s.events <- ev:
	default:
	}
}

// Run drives the session until ctx is canceled, the user quits or the
// presenter fails.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	canvas := render.NewCanvas(s.cfg.Cols, s.cfg.Rows)
	frame := NewFrame(render.PixelViewport(s.cfg.Cols, s.cfg.Rows), s.cfg.Frame)

	loaded := make(chan loadResult, 1)
	go func() {
		items, err := s.cfg.Source.Projects(ctx)
		loaded <- loadResult{items: items, err: err}
	}()

	ticker := time.NewTicker(FrameInterval(frame.opts.FrameRate))
	defer ticker.Stop()

	log.Printf("session %s started (%dx%d)", s.ID, s.cfg.Cols, s.cfg.Rows)
	defer log.Printf("session %s ended", s.ID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-loaded:
			frame.Load(res.items, res.err)
			if res.err != nil {
				log.Printf("session %s: %v", s.ID, res.err)
			} else {
				log.Printf("session %s: loaded %d projects", s.ID, len(res.items))
			}
		case now := <-ticker.C:
			if quit := s.drain(frame, canvas); quit {
				return nil
			}
			frame.Advance(now)
			frame.Draw(canvas)
			if err := s.cfg.Presenter.Present(canvas); err != nil {
				return fmt.Errorf("present frame: %w", err)
			}
			frame.UpdateHover()
		}
	}
}

// drain applies every queued event and reports whether the user quit.
func (s *Session) drain(frame *Frame, canvas *render.Canvas) bool {
	for {
		select {
		case ev := <-s.events:
			if ev.Action == ActionResize {
				canvas.Resize(ev.Cols, ev.Rows)
				frame.Resize(render.PixelViewport(ev.Cols, ev.Rows))
				continue
			}
			eff := frame.Handle(ev)
			if eff.Quit {
				return true
			}
			if eff.Open != "" {
				s.open(frame, eff.Open)
			}
		default:
			return false
		}
	}
}

func (s *Session) open(frame *Frame, url string) {
	if s.cfg.Opener == nil {
		frame.SetStatus(render.StatusLink(url), url)
		return
	}
	if err := s.cfg.Opener.Open(url); err != nil {
		log.Printf("session %s: open %s: %v", s.ID, url, err)
		frame.SetStatus(render.StatusLink(url), url)
		return
	}
	frame.SetStatus("opened "+url, "")
}
