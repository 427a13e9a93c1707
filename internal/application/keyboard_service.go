package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

// Keyboard issue types.
const (
	IssueNoFocusable      = "no_focusable_elements"
	IssueKeyboardTrap     = "keyboard_trap"
	IssueEnterActivation  = "enter_activation"
	IssueSpaceActivation  = "space_activation"
	IssueEscapeNotClosing = "escape_not_closing"
	IssueArrowNavigation  = "arrow_navigation"
)

// activationBinding is the page→host function the click listeners call.
const activationBinding = "__uikraftActivated"

type focusTarget struct {
	ID      string `json:"id"`
	Element string `json:"element"`
}

type dialogState struct {
	Present bool `json:"present"`
	Visible bool `json:"visible"`
}

// KeyboardService drives synthetic key presses against a rendered component.
type KeyboardService struct {
	session browserSession
}

func NewKeyboardService(pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) *KeyboardService {
	return &KeyboardService{session: newBrowserSession(pool, cfg, logger)}
}

// kbRun is the state of one keyboard validation.
type kbRun struct {
	svc     *KeyboardService
	page    domain.Page
	src     domain.ComponentSource
	ct      domain.ComponentType
	details *domain.KeyboardDetails
}

// Validate runs the tests that apply to componentType. Each test starts from
// a freshly rendered document. Critical issues are errors; serious and
// moderate issues are warnings.
func (s *KeyboardService) Validate(ctx context.Context, src domain.ComponentSource, componentType domain.ComponentType) (*domain.ValidationResult, error) {
	if componentType == "" {
		componentType = domain.ComponentGeneral
	}
	details := &domain.KeyboardDetails{
		ComponentType: componentType,
		Issues:        []domain.KeyboardIssue{},
		IssuesByType:  map[string]int{},
		FocusOrder:    []string{},
	}

	err := s.session.run(ctx, domain.ValidatorKeyboard, func(ctx context.Context, page domain.Page) error {
		r := &kbRun{svc: s, page: page, src: src, ct: componentType, details: details}
		return r.all(ctx)
	})
	if err != nil {
		return nil, err
	}

	for _, issue := range details.Issues {
		details.IssuesByType[issue.Test]++
	}
	errs, warnings := classify(details.Issues,
		func(i domain.KeyboardIssue) bool { return i.Severity == domain.SeverityCritical },
		func(i domain.KeyboardIssue) string {
			return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Type, i.Message)
		},
	)

	s.session.logger.Info("keyboard audit complete",
		zap.String("component", src.Name),
		zap.String("type", string(componentType)),
		zap.Int("focusable", details.FocusableCount),
		zap.Int("issues", len(details.Issues)),
	)
	return domain.NewValidationResult(domain.ValidatorKeyboard, errs, warnings, details), nil
}

func (r *kbRun) all(ctx context.Context) error {
	n, err := r.tabNavigation(ctx)
	if err != nil {
		return err
	}

	if n > 0 {
		if err := r.tabOrder(ctx, n); err != nil {
			return err
		}
	}

	switch r.ct {
	case domain.ComponentButton, domain.ComponentLink:
		if n > 0 {
			if err := r.activation(ctx); err != nil {
				return err
			}
		}
	}

	switch r.ct {
	case domain.ComponentModal, domain.ComponentDialog, domain.ComponentDropdown:
		if err := r.escape(ctx, n); err != nil {
			return err
		}
	}

	switch r.ct {
	case domain.ComponentTabs, domain.ComponentSelect, domain.ComponentDropdown:
		if n > 0 {
			if err := r.arrowKeys(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *kbRun) issue(i domain.KeyboardIssue) {
	r.details.Issues = append(r.details.Issues, i)
}

// fresh re-renders the component and tags its focusable elements in DOM
// order.
func (r *kbRun) fresh(ctx context.Context) ([]focusTarget, error) {
	if err := r.svc.session.render(ctx, r.page, r.src, nil); err != nil {
		return nil, err
	}
	var targets []focusTarget
	if err := evaluate(ctx, r.page, "listing focusable elements", tagFocusableJS, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *kbRun) active(ctx context.Context) (focusTarget, error) {
	var t focusTarget
	err := evaluate(ctx, r.page, "reading active element", activeElementJS, &t)
	return t, err
}

func (r *kbRun) tabNavigation(ctx context.Context) (int, error) {
	r.details.TestsRun = append(r.details.TestsRun, domain.KeyboardTestTabNavigation)
	targets, err := r.fresh(ctx)
	if err != nil {
		return 0, err
	}
	n := len(targets)
	r.details.FocusableCount = n

	if n == 0 && r.ct.IsInteractive() {
		r.issue(domain.KeyboardIssue{
			Type:     IssueNoFocusable,
			Test:     domain.KeyboardTestTabNavigation,
			Message:  fmt.Sprintf("%s component has no keyboard-focusable elements", r.ct),
			Severity: domain.SeverityCritical,
			Expected: "at least 1 focusable element",
			Actual:   "0",
		})
	}
	return n, nil
}

// tabOrder presses Tab once per focusable element, then once more. Focus
// still on the last element after the extra press is a trap.
func (r *kbRun) tabOrder(ctx context.Context, n int) error {
	r.details.TestsRun = append(r.details.TestsRun, domain.KeyboardTestTabOrder)
	if _, err := r.fresh(ctx); err != nil {
		return err
	}

	var last focusTarget
	for i := 0; i < n; i++ {
		if err := press(ctx, r.page, domain.KeyTab); err != nil {
			return err
		}
		t, err := r.active(ctx)
		if err != nil {
			return err
		}
		r.details.FocusOrder = append(r.details.FocusOrder, t.Element)
		last = t
	}

	if err := press(ctx, r.page, domain.KeyTab); err != nil {
		return err
	}
	after, err := r.active(ctx)
	if err != nil {
		return err
	}
	if last.ID != "" && after.ID == last.ID {
		r.issue(domain.KeyboardIssue{
			Type:     IssueKeyboardTrap,
			Test:     domain.KeyboardTestTabOrder,
			Message:  fmt.Sprintf("focus stays on %s after Tab; keyboard users cannot leave the component", last.Element),
			Severity: domain.SeveritySerious,
			Expected: "focus moves past the last element",
			Actual:   "focus remained on " + last.Element,
		})
	}
	return nil
}

// activation checks that Enter, and Space on button-like elements, fire a
// click. Clicks arrive over the page→host bridge.
func (r *kbRun) activation(ctx context.Context) error {
	r.details.TestsRun = append(r.details.TestsRun, domain.KeyboardTestActivation)
	if _, err := r.fresh(ctx); err != nil {
		return err
	}
	clicks, err := r.page.Bridge(ctx, activationBinding)
	if err != nil {
		return fmt.Errorf("%w: installing activation bridge: %w", domain.ErrScriptInjection, err)
	}
	var ok bool
	if err := evaluate(ctx, r.page, "installing click listeners", fmt.Sprintf(installActivationJS, activationBinding), &ok); err != nil {
		return err
	}

	if err := press(ctx, r.page, domain.KeyTab); err != nil {
		return err
	}
	target, err := r.active(ctx)
	if err != nil {
		return err
	}
	var buttonLike bool
	if err := evaluate(ctx, r.page, "inspecting focused element", buttonLikeJS, &buttonLike); err != nil {
		return err
	}

	if err := press(ctx, r.page, domain.KeyEnter); err != nil {
		return err
	}
	if !r.awaitClick(ctx, clicks) {
		r.issue(domain.KeyboardIssue{
			Type:     IssueEnterActivation,
			Test:     domain.KeyboardTestActivation,
			Message:  fmt.Sprintf("Enter on %s did not activate it", target.Element),
			Severity: domain.SeveritySerious,
			Expected: "click event on Enter",
			Actual:   "no click event",
		})
	}

	// Space must not activate links, so only button-like elements are tested.
	if !buttonLike {
		return nil
	}
	drain(clicks)
	if err := press(ctx, r.page, domain.KeySpace); err != nil {
		return err
	}
	if !r.awaitClick(ctx, clicks) {
		r.issue(domain.KeyboardIssue{
			Type:     IssueSpaceActivation,
			Test:     domain.KeyboardTestActivation,
			Message:  fmt.Sprintf("Space on %s did not activate it", target.Element),
			Severity: domain.SeveritySerious,
			Expected: "click event on Space",
			Actual:   "no click event",
		})
	}
	return nil
}

func (r *kbRun) awaitClick(ctx context.Context, clicks <-chan string) bool {
	timer := time.NewTimer(r.svc.session.timeouts.Activation)
	defer timer.Stop()
	select {
	case <-clicks:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func drain(ch <-chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// escape applies only when a visible dialog is on screen after render.
func (r *kbRun) escape(ctx context.Context, n int) error {
	r.details.TestsRun = append(r.details.TestsRun, domain.KeyboardTestEscape)
	if _, err := r.fresh(ctx); err != nil {
		return err
	}
	var state dialogState
	if err := evaluate(ctx, r.page, "locating dialog", dialogStateJS, &state); err != nil {
		return err
	}
	if !state.Present || !state.Visible {
		r.details.Notes = append(r.details.Notes, "escape: no visible dialog, test not applicable")
		return nil
	}

	if n > 0 {
		if err := press(ctx, r.page, domain.KeyTab); err != nil {
			return err
		}
	}
	if err := press(ctx, r.page, domain.KeyEscape); err != nil {
		return err
	}
	var closed bool
	if err := evaluate(ctx, r.page, "checking dialog state", dialogClosedJS, &closed); err != nil {
		return err
	}
	if !closed {
		r.issue(domain.KeyboardIssue{
			Type:     IssueEscapeNotClosing,
			Test:     domain.KeyboardTestEscape,
			Message:  "Escape did not close the dialog",
			Severity: domain.SeveritySerious,
			Expected: `aria-hidden="true" or removed from the DOM`,
			Actual:   "dialog still visible",
		})
	}
	return nil
}

// arrowKeys raises an issue only for tabs; select and dropdown widgets may
// legitimately keep focus on the trigger.
func (r *kbRun) arrowKeys(ctx context.Context) error {
	r.details.TestsRun = append(r.details.TestsRun, domain.KeyboardTestArrowKeys)
	if _, err := r.fresh(ctx); err != nil {
		return err
	}
	if err := press(ctx, r.page, domain.KeyTab); err != nil {
		return err
	}
	before, err := r.active(ctx)
	if err != nil {
		return err
	}
	if err := press(ctx, r.page, domain.KeyArrowRight); err != nil {
		return err
	}
	after, err := r.active(ctx)
	if err != nil {
		return err
	}

	if before.ID == after.ID && r.ct == domain.ComponentTabs {
		r.issue(domain.KeyboardIssue{
			Type:     IssueArrowNavigation,
			Test:     domain.KeyboardTestArrowKeys,
			Message:  fmt.Sprintf("ArrowRight did not move focus from %s", before.Element),
			Severity: domain.SeverityModerate,
			Expected: "focus moves to the next tab",
			Actual:   "focus unchanged",
		})
	}
	return nil
}
