package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openkraft/uikraft/internal/domain"
)

// fakeElement is one focusable element of the fake DOM.
type fakeElement struct {
	desc       string
	buttonLike bool
	activates  bool // Enter fires click
	spaceFires bool // Space fires click
	traps      bool // Tab does not leave
	style      *domain.FocusStyle
}

// fakePage is a scripted domain.Page. It answers the known page scripts
// from in-memory state.
type fakePage struct {
	mu sync.Mutex

	elements    []fakeElement
	violations  map[string][]domain.A11yViolation // by variant
	renderFails bool
	axeMissing  bool

	dialog       *dialogState
	dialogCloses bool
	arrowMoves   bool

	samples  map[string][]contrastSample // by forced state, "" for none
	computed []domain.StyleDeclaration

	focus     int
	variant   string
	listening bool
	closed    bool
	dialogOff bool
	forced    []string
	bridge    chan string

	docs    []string
	presses [][]string // per Load
	forces  [][]string
}

func newFakePage(elements ...fakeElement) *fakePage {
	return &fakePage{elements: elements, focus: -1}
}

func (p *fakePage) Load(_ context.Context, html string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = append(p.docs, html)
	p.presses = append(p.presses, nil)
	p.focus = -1
	p.listening = false
	p.dialogOff = false
	p.forced = nil
	p.variant = ""
	if i := strings.Index(html, `"variant":"`); i >= 0 {
		rest := html[i+len(`"variant":"`):]
		p.variant = rest[:strings.IndexByte(rest, '"')]
	}
	return nil
}

func (p *fakePage) WaitFor(context.Context, string, time.Duration) error {
	if p.renderFails {
		return context.DeadlineExceeded
	}
	return nil
}

func (p *fakePage) Evaluate(_ context.Context, script string, out any) error {
	p.mu.Lock()
	v, err := p.answer(script)
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *fakePage) answer(script string) (any, error) {
	switch {
	case script == renderErrorJS:
		if p.renderFails {
			return "ReferenceError: Widget is not defined", nil
		}
		return "", nil
	case script == tagFocusableJS:
		targets := make([]focusTarget, len(p.elements))
		for i, el := range p.elements {
			targets[i] = focusTarget{ID: fmt.Sprint(i), Element: el.desc}
		}
		return targets, nil
	case script == activeElementJS:
		if p.focus < 0 {
			return focusTarget{}, nil
		}
		return focusTarget{ID: fmt.Sprint(p.focus), Element: p.elements[p.focus].desc}, nil
	case script == buttonLikeJS:
		return p.focus >= 0 && p.elements[p.focus].buttonLike, nil
	case strings.HasPrefix(script, "new Promise"):
		if p.axeMissing {
			return nil, errors.New("failed to load axe")
		}
		return true, nil
	case strings.HasPrefix(script, "typeof window.axe"):
		return !p.axeMissing, nil
	case script == axeRunJS:
		return p.violations[p.variant], nil
	case script == fmt.Sprintf(installActivationJS, activationBinding):
		p.listening = true
		return true, nil
	case script == dialogStateJS:
		if p.dialog == nil {
			return dialogState{}, nil
		}
		return *p.dialog, nil
	case script == dialogClosedJS:
		return p.dialogOff, nil
	case script == focusStyleJS:
		if p.focus < 0 {
			return nil, nil
		}
		return p.elements[p.focus].style, nil
	case script == tagContrastJS:
		return len(p.samples[""]), nil
	case script == contrastSampleJS:
		return p.samples[strings.Join(p.forced, ",")], nil
	case script == computedStylesJS:
		return p.computed, nil
	}
	return nil, fmt.Errorf("unexpected script: %.40s", script)
}

func (p *fakePage) Press(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presses[len(p.presses)-1] = append(p.presses[len(p.presses)-1], key)

	switch key {
	case domain.KeyTab:
		if p.focus >= 0 && p.elements[p.focus].traps {
			return nil
		}
		p.focus++
		if p.focus >= len(p.elements) {
			p.focus = -1
		}
	case domain.KeyEnter:
		if p.focus >= 0 && p.elements[p.focus].activates {
			p.click()
		}
	case domain.KeySpace:
		if p.focus >= 0 && p.elements[p.focus].spaceFires {
			p.click()
		}
	case domain.KeyEscape:
		if p.dialogCloses {
			p.dialogOff = true
		}
	case domain.KeyArrowRight:
		if p.arrowMoves && p.focus >= 0 && p.focus+1 < len(p.elements) {
			p.focus++
		}
	}
	return nil
}

func (p *fakePage) click() {
	if p.listening && p.bridge != nil {
		p.bridge <- "click"
	}
}

func (p *fakePage) ForcePseudoState(_ context.Context, _ string, states []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forced = states
	p.forces = append(p.forces, states)
	return nil
}

func (p *fakePage) Bridge(context.Context, string) (<-chan string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bridge == nil {
		p.bridge = make(chan string, 8)
	}
	return p.bridge, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

// tabsPerLoad counts Tab presses after each document load.
func (p *fakePage) tabsPerLoad() []int {
	counts := make([]int, len(p.presses))
	for i, keys := range p.presses {
		for _, k := range keys {
			if k == domain.KeyTab {
				counts[i]++
			}
		}
	}
	return counts
}

type fakeBrowser struct{ page *fakePage }

func (b fakeBrowser) NewPage(context.Context) (domain.Page, error) { return b.page, nil }

// fakePool counts acquisitions so tests can assert balanced release.
type fakePool struct {
	mu       sync.Mutex
	page     *fakePage
	fail     error
	acquired int
	released int
}

func (p *fakePool) Acquire(context.Context) (domain.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return nil, p.fail
	}
	p.acquired++
	return fakeBrowser{page: p.page}, nil
}

func (p *fakePool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

// RunParallel runs thunks one after another; the fake page is not safe for
// concurrent keyboard work.
func (p *fakePool) RunParallel(ctx context.Context, thunks ...domain.Thunk) []domain.Outcome {
	out := make([]domain.Outcome, len(thunks))
	for i, t := range thunks {
		res, err := t(ctx)
		out[i] = domain.Outcome{Result: res, Err: err}
	}
	return out
}

func testConfig() domain.ProjectConfig {
	cfg := domain.DefaultConfig()
	cfg.Timeouts.Activation = 20 * time.Millisecond
	return cfg
}

var widget = domain.ComponentSource{
	Name: "Widget",
	Code: "export function Widget() { return <button>Submit</button>; }",
}
