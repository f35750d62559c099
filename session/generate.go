package session

import (
	"context"
	"log/slog"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
)

// Generate asks the generator for a palette matching theme and, on
// success, makes it the current palette. Only one generation may run at a
// time. On failure the palette is unchanged; palettegen.UserMessage turns
// the error into display text.
func (s *Session) Generate(ctx context.Context, theme string) (piart.Palette, error) {
	req, err := s.begin(theme)
	if err != nil {
		return piart.Palette{}, err
	}
	return s.run(ctx, req)
}

// GenerateAsync starts a generation in the background and calls done with
// its result. Validation errors, including ErrGenerationPending, are
// returned immediately and done is not called.
func (s *Session) GenerateAsync(theme string, done func(piart.Palette, error)) error {
	req, err := s.begin(theme)
	if err != nil {
		return err
	}
	go func() {
		p, err := s.run(context.Background(), req)
		if done != nil {
			done(p, err)
		}
	}()
	return nil
}

// begin validates a request and marks the session pending. A successful
// begin must be followed by run.
func (s *Session) begin(theme string) (palettegen.Request, error) {
	req, err := palettegen.NewRequest(theme)
	if err != nil {
		return palettegen.Request{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return palettegen.Request{}, ErrClosed
	case s.gen == nil:
		return palettegen.Request{}, ErrNoGenerator
	case s.pending:
		return palettegen.Request{}, ErrGenerationPending
	}
	s.pending = true
	s.wg.Add(1)
	return req, nil
}

func (s *Session) run(ctx context.Context, req palettegen.Request) (piart.Palette, error) {
	defer s.wg.Done()
	log := piart.Logger().With(slog.String("request", req.ID))
	log.Info("generating palette", slog.String("theme", req.Theme))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	p, err := s.gen.Generate(ctx, req)

	s.mu.Lock()
	s.pending = false
	if s.closed {
		s.mu.Unlock()
		log.Warn("discarding palette generated after close")
		return piart.Palette{}, ErrClosed
	}
	if err != nil {
		s.mu.Unlock()
		log.Info("palette generation failed", slog.Any("error", err))
		return piart.Palette{}, err
	}
	s.palette = p
	s.mu.Unlock()

	log.Info("palette generated", slog.String("palette", p.String()))
	s.notify(p)
	return p, nil
}
