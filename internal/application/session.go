package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

// browserSession owns the acquire/render/release cycle shared by every
// browser-driven validator.
type browserSession struct {
	pool     domain.BrowserPool
	harness  *Harness
	timeouts domain.TimeoutConfig
	logger   *zap.Logger
}

func newBrowserSession(pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) browserSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := cfg.Timeouts
	if t.Render <= 0 {
		t.Render = domain.DefaultRenderTimeout
	}
	if t.Validator <= 0 {
		t.Validator = domain.DefaultValidatorTimeout
	}
	if t.Activation <= 0 {
		t.Activation = domain.DefaultActivationTimeout
	}
	return browserSession{
		pool:     pool,
		harness:  NewHarness(cfg.Runtime),
		timeouts: t,
		logger:   logger,
	}
}

// run acquires the pooled browser, opens a page and calls fn under the
// validator timeout. The page is closed and the browser released on every
// path.
func (s browserSession) run(ctx context.Context, validator string, fn func(ctx context.Context, page domain.Page) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Validator)
	defer cancel()

	start := time.Now()
	browser, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring browser: %w", err)
	}
	defer s.pool.Release()

	page, err := browser.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("%w: opening page: %w", domain.ErrBrowserLaunch, err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("closing page", zap.String("validator", validator), zap.Error(cerr))
		}
	}()

	err = fn(ctx, page)
	s.logger.Debug("browser session finished",
		zap.String("validator", validator),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("ok", err == nil),
	)
	return err
}

// render loads a fresh harness document, which also resets the focus
// cursor, and waits for the component to mount.
func (s browserSession) render(ctx context.Context, page domain.Page, src domain.ComponentSource, props map[string]any) error {
	doc, err := s.harness.Document(src, props)
	if err != nil {
		return err
	}
	if err := page.Load(ctx, doc); err != nil {
		return fmt.Errorf("%w: loading harness: %w", domain.ErrEvaluation, err)
	}
	if err := page.WaitFor(ctx, RenderedProbe, s.timeouts.Render); err != nil {
		var reason string
		_ = page.Evaluate(ctx, renderErrorJS, &reason)
		if reason != "" {
			return fmt.Errorf("%w: %s did not mount within %s: %s", domain.ErrRenderTimeout, src.Name, s.timeouts.Render, reason)
		}
		return fmt.Errorf("%w: %s did not mount within %s: %w", domain.ErrRenderTimeout, src.Name, s.timeouts.Render, err)
	}
	return nil
}

// evaluate wraps page.Evaluate failures as domain.ErrEvaluation.
func evaluate(ctx context.Context, page domain.Page, what, script string, out any) error {
	if err := page.Evaluate(ctx, script, out); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrEvaluation, what, err)
	}
	return nil
}

func press(ctx context.Context, page domain.Page, key string) error {
	if err := page.Press(ctx, key); err != nil {
		return fmt.Errorf("%w: pressing %s: %w", domain.ErrEvaluation, key, err)
	}
	return nil
}

// classify splits formatted findings into blocking errors and advisory
// warnings.
func classify[T any](items []T, blocking func(T) bool, format func(T) string) (errs, warnings []string) {
	for _, it := range items {
		if blocking(it) {
			errs = append(errs, format(it))
		} else {
			warnings = append(warnings, format(it))
		}
	}
	return errs, warnings
}
