package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/css"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

var keys = map[string]string{
	domain.KeyTab:        kb.Tab,
	domain.KeyEnter:      kb.Enter,
	domain.KeySpace:      " ",
	domain.KeyEscape:     kb.Escape,
	domain.KeyArrowRight: kb.ArrowRight,
}

// Page is one browser tab. It implements domain.Page.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	cssOnce sync.Once
	cssErr  error

	mu       sync.Mutex
	bindings map[string]chan string
}

// run executes actions on the tab, bounded by the caller's ctx. Cancelling
// the caller's ctx stops the actions without closing the tab.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var dcancel context.CancelFunc
		runCtx, dcancel = context.WithDeadline(runCtx, dl)
		defer dcancel()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *Page) Load(ctx context.Context, html string) error {
	return p.run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("reading frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
	)
}

func (p *Page) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// Evaluate awaits promises and decodes the JSON result into out.
func (p *Page) Evaluate(ctx context.Context, script string, out any) error {
	var raw []byte
	err := p.run(ctx, chromedp.Evaluate(script, &raw, func(e *runtime.EvaluateParams) *runtime.EvaluateParams {
		return e.WithAwaitPromise(true)
	}))
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding script result: %w", err)
	}
	return nil
}

func (p *Page) Press(ctx context.Context, key string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("unsupported key %q", key)
	}
	return p.run(ctx, chromedp.KeyEvent(k))
}

// ForcePseudoState forces states on every node matching selector through
// the CSS domain, which genuine :hover and :focus rules respond to.
func (p *Page) ForcePseudoState(ctx context.Context, selector string, states []string) error {
	if states == nil {
		states = []string{}
	}
	return p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		p.cssOnce.Do(func() {
			if err := dom.Enable().Do(ctx); err != nil {
				p.cssErr = err
				return
			}
			p.cssErr = css.Enable().Do(ctx)
		})
		if p.cssErr != nil {
			return fmt.Errorf("enabling css domain: %w", p.cssErr)
		}

		doc, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		ids, err := dom.QuerySelectorAll(doc.NodeID, selector).Do(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := css.ForcePseudoState(id, states).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	}))
}

// Bridge registers window[name] as a CDP binding. Payloads arrive on the
// returned channel; when it is full further payloads are dropped.
func (p *Page) Bridge(ctx context.Context, name string) (<-chan string, error) {
	p.mu.Lock()
	if ch, ok := p.bindings[name]; ok {
		p.mu.Unlock()
		return ch, nil
	}
	ch := make(chan string, 16)
	p.bindings[name] = ch
	p.mu.Unlock()

	chromedp.ListenTarget(p.ctx, func(ev any) {
		called, ok := ev.(*runtime.EventBindingCalled)
		if !ok || called.Name != name {
			return
		}
		select {
		case ch <- called.Payload:
		default:
			p.logger.Debug("bridge payload dropped", zap.String("binding", name))
		}
	})
	if err := p.run(ctx, runtime.AddBinding(name)); err != nil {
		return nil, err
	}
	return ch, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	p.cancel()
	return nil
}
