package domain

import (
	"context"
	"time"
)

// Key names accepted by Page.Press.
const (
	KeyTab        = "Tab"
	KeyEnter      = "Enter"
	KeySpace      = "Space"
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
)

// Page is one isolated browser tab. Calls on a Page are sequential; the
// tab's focus cursor is shared mutable state.
type Page interface {
	// Load replaces the document with html.
	Load(ctx context.Context, html string) error
	// WaitFor blocks until selector matches a node or timeout elapses.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	// Evaluate runs script, awaits a returned promise, and decodes the
	// JSON value into out (out may be nil).
	Evaluate(ctx context.Context, script string, out any) error
	// Press dispatches a trusted key press.
	Press(ctx context.Context, key string) error
	// ForcePseudoState forces CSS pseudo classes on every node matching
	// selector. An empty states slice clears forced state.
	ForcePseudoState(ctx context.Context, selector string, states []string) error
	// Bridge exposes window[name](payload) to the page and delivers each
	// payload on the returned channel.
	Bridge(ctx context.Context, name string) (<-chan string, error)
	Close() error
}

// Browser opens isolated pages on a shared browser process.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
}

// BrowserPool hands out a shared, reference-counted browser.
// Every successful Acquire must be paired with exactly one Release.
type BrowserPool interface {
	Acquire(ctx context.Context) (Browser, error)
	Release()
}

// Thunk is one validator invocation scheduled by a ParallelRunner.
type Thunk func(ctx context.Context) (*ValidationResult, error)

// Outcome is the result of one Thunk. Exactly one of Result and Err is set.
type Outcome struct {
	Result *ValidationResult
	Err    error
}

// ParallelRunner runs thunks concurrently against the shared browser and
// returns their outcomes in input order. A failing thunk never cancels the
// others.
type ParallelRunner interface {
	RunParallel(ctx context.Context, thunks ...Thunk) []Outcome
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
	LoadTokens(path string) (*DesignTokens, error)
}

// RunHistory persists suite run entries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo reads repository metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
