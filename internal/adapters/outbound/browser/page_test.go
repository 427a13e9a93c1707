package browser

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

// chromePath finds a local Chromium or skips the test.
func chromePath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chromium found on PATH")
	return ""
}

func openPage(t *testing.T) domain.Page {
	t.Helper()
	pool := NewPool(domain.BrowserConfig{ExecPath: chromePath(t), NoSandbox: true}, zap.NewNop())
	t.Cleanup(pool.Close)

	ctx := context.Background()
	b, err := pool.Acquire(ctx)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	page, err := b.NewPage(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = page.Close() })
	return page
}

func TestPage_LoadEvaluatePress(t *testing.T) {
	page := openPage(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, page.Load(ctx, `<div id="root"><button id="a">A</button><button id="b">B</button></div>`))
	require.NoError(t, page.WaitFor(ctx, "#root > *", 5*time.Second))

	var n int
	require.NoError(t, page.Evaluate(ctx, `document.querySelectorAll('button').length`, &n))
	assert.Equal(t, 2, n)

	var async string
	require.NoError(t, page.Evaluate(ctx, `Promise.resolve('done')`, &async))
	assert.Equal(t, "done", async)

	require.NoError(t, page.Press(ctx, domain.KeyTab))
	require.NoError(t, page.Press(ctx, domain.KeyTab))
	var active string
	require.NoError(t, page.Evaluate(ctx, `document.activeElement.id`, &active))
	assert.Equal(t, "b", active)

	assert.Error(t, page.Press(ctx, "F13"))
}

func TestPage_WaitForTimesOut(t *testing.T) {
	page := openPage(t)
	ctx := context.Background()

	require.NoError(t, page.Load(ctx, `<div id="root"></div>`))
	assert.Error(t, page.WaitFor(ctx, "#root > *", 200*time.Millisecond))
}

func TestPage_BridgeDeliversPayloads(t *testing.T) {
	page := openPage(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, page.Load(ctx, `<div id="root"></div>`))
	ch, err := page.Bridge(ctx, "__probe")
	require.NoError(t, err)
	require.NoError(t, page.Evaluate(ctx, `window.__probe('hello'); true`, nil))

	select {
	case got := <-ch:
		assert.Equal(t, "hello", got)
	case <-time.After(5 * time.Second):
		t.Fatal("binding payload never arrived")
	}
}

func TestPage_ForcePseudoStateHover(t *testing.T) {
	page := openPage(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html := `<style>#t{color:rgb(0,0,0)}#t:hover{color:rgb(255,0,0)}</style><div id="root"><span id="t">x</span></div>`
	require.NoError(t, page.Load(ctx, html))

	require.NoError(t, page.ForcePseudoState(ctx, "#t", []string{"hover"}))
	var c string
	require.NoError(t, page.Evaluate(ctx, `getComputedStyle(document.getElementById('t')).color`, &c))
	assert.Equal(t, "rgb(255, 0, 0)", c)

	require.NoError(t, page.ForcePseudoState(ctx, "#t", nil))
	require.NoError(t, page.Evaluate(ctx, `getComputedStyle(document.getElementById('t')).color`, &c))
	assert.Equal(t, "rgb(0, 0, 0)", c)
}
