// Package browser implements the browser ports on a shared headless Chromium
// driven by chromedp.
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/uikraft/internal/domain"
)

// launcher starts a browser and returns its chromedp context. cancel must
// terminate the process. ctx bounds the start only; the browser outlives it.
type launcher func(ctx context.Context, cfg domain.BrowserConfig, logger *zap.Logger) (bctx context.Context, cancel context.CancelFunc, err error)

// Pool is a lazily launched, reference-counted Chromium shared by all
// validators. It implements domain.BrowserPool and domain.ParallelRunner.
type Pool struct {
	cfg    domain.BrowserConfig
	logger *zap.Logger
	launch launcher

	mu       sync.Mutex
	refs     int
	ctx      context.Context
	cancel   context.CancelFunc
	launches int
}

func NewPool(cfg domain.BrowserConfig, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{cfg: cfg, logger: logger, launch: launchChrome}
}

func launchChrome(ctx context.Context, cfg domain.BrowserConfig, logger *zap.Logger) (context.Context, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.IsHeadless()),
		chromedp.Flag("disable-gpu", true),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	sugar := logger.Sugar()
	bctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Debugf),
	)
	stop := func() {
		cancel()
		allocCancel()
	}

	// The first Run starts the process and ties it to bctx, so the caller's
	// ctx can only abandon the start, never own the browser.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(bctx) }()
	select {
	case err := <-started:
		if err != nil {
			stop()
			return nil, nil, err
		}
	case <-ctx.Done():
		stop()
		<-started
		return nil, nil, ctx.Err()
	}
	return bctx, stop, nil
}

// Acquire returns the shared browser, launching it on first use or after
// it died, and takes a reference. Pair every successful Acquire with one
// Release.
func (p *Pool) Acquire(ctx context.Context) (domain.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx != nil && p.ctx.Err() != nil {
		p.logger.Warn("browser exited, relaunching", zap.Error(p.ctx.Err()))
		p.teardownLocked()
	}
	if p.ctx == nil {
		bctx, cancel, err := p.launch(ctx, p.cfg, p.logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrBrowserLaunch, err)
		}
		p.ctx, p.cancel = bctx, cancel
		p.launches++
		p.logger.Debug("browser launched", zap.Bool("headless", p.cfg.IsHeadless()))
	}
	p.refs++
	return &Browser{ctx: p.ctx, logger: p.logger}, nil
}

// Release drops a reference and shuts the browser down at zero.
func (p *Pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refs == 0 {
		p.logger.Warn("browser released more often than acquired")
		return
	}
	p.refs--
	if p.refs == 0 {
		p.teardownLocked()
	}
}

// Close terminates the browser regardless of outstanding references.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs = 0
	p.teardownLocked()
}

// RefCount reports the outstanding references.
func (p *Pool) RefCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs
}

func (p *Pool) teardownLocked() {
	if p.cancel != nil {
		p.cancel()
		p.logger.Debug("browser closed")
	}
	p.ctx, p.cancel = nil, nil
}

// RunParallel holds one reference for the whole batch so the browser
// survives between thunks. Each thunk's error or panic lands in its own
// Outcome; siblings keep running and the batch always returns partial
// results in input order.
func (p *Pool) RunParallel(ctx context.Context, thunks ...domain.Thunk) []domain.Outcome {
	out := make([]domain.Outcome, len(thunks))
	if _, err := p.Acquire(ctx); err != nil {
		for i := range out {
			out[i].Err = err
		}
		return out
	}
	defer p.Release()

	// plain Group: no shared cancellation between thunks
	var g errgroup.Group
	for i, thunk := range thunks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					out[i] = domain.Outcome{Err: fmt.Errorf("validator panicked: %v", r)}
				}
			}()
			res, err := thunk(ctx)
			if err == nil && res == nil {
				err = fmt.Errorf("validator returned no result")
			}
			out[i] = domain.Outcome{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Browser opens tabs on the shared process.
type Browser struct {
	ctx    context.Context
	logger *zap.Logger
}

// NewPage opens a new tab with its own focus cursor.
func (b *Browser) NewPage(ctx context.Context) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(b.ctx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: opening tab: %w", domain.ErrBrowserLaunch, err)
	}
	return &Page{ctx: tabCtx, cancel: cancel, logger: b.logger, bindings: map[string]chan string{}}, nil
}
