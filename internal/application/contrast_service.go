package application

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/color"
)

// contrastSample is the computed color state of one tagged element.
type contrastSample struct {
	Key              string  `json:"key"`
	Element          string  `json:"element"`
	Text             bool    `json:"text"`
	Color            string  `json:"color"`
	Background       string  `json:"background"`
	Border           string  `json:"border"`
	BorderWidth      string  `json:"borderWidth"`
	OwnBackground    string  `json:"ownBackground"`
	ParentBackground string  `json:"parentBackground"`
	FontSize         float64 `json:"fontSize"`
	FontWeight       int     `json:"fontWeight"`
	Disabled         bool    `json:"disabled"`
}

// pair resolves the colors and WCAG kind of a sample. Text uses its color
// against the effective background; text-less controls use their border
// (or fill) against the parent. ok is false when a color is unparseable.
func (s contrastSample) pair() (fg, bg color.RGB, kind color.Kind, ok bool) {
	if s.Text {
		fg, okF := color.Parse(s.Color)
		bg, okB := color.Parse(s.Background)
		kind = color.NormalText
		if color.IsLargeText(s.FontSize, s.FontWeight) {
			kind = color.LargeText
		}
		return fg, bg, kind, okF && okB
	}

	bg, okB := color.Parse(s.ParentBackground)
	if s.BorderWidth != "" && s.BorderWidth != "0px" {
		if fg, okF := color.Parse(s.Border); okF {
			return fg, bg, color.UIComponent, okB
		}
	}
	fg, okF := color.Parse(s.OwnBackground)
	return fg, bg, color.UIComponent, okF && okB
}

// ContrastService checks rendered colors across interaction states.
type ContrastService struct {
	session browserSession
}

func NewContrastService(pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) *ContrastService {
	return &ContrastService{session: newBrowserSession(pool, cfg, logger)}
}

// Validate samples default, hover and focus states by forcing CSS pseudo
// classes; disabled elements are judged in their own state. Failures in
// default, hover and focus are errors; disabled failures are warnings.
func (s *ContrastService) Validate(ctx context.Context, src domain.ComponentSource) (*domain.ValidationResult, error) {
	details := &domain.ContrastDetails{
		Violations: []domain.ContrastViolation{},
		ByState:    map[string]int{},
	}

	err := s.session.run(ctx, domain.ValidatorContrast, func(ctx context.Context, page domain.Page) error {
		if err := s.session.render(ctx, page, src, nil); err != nil {
			return err
		}
		var n int
		if err := evaluate(ctx, page, "tagging contrast candidates", tagContrastJS, &n); err != nil {
			return err
		}
		if n == 0 {
			details.Note = "no text or UI components rendered"
			return nil
		}

		states := []struct {
			name   string
			pseudo []string
		}{
			{domain.StateDefault, nil},
			{domain.StateHover, []string{"hover"}},
			{domain.StateFocus, []string{"focus", "focus-visible"}},
		}
		for _, st := range states {
			if st.pseudo != nil {
				if err := page.ForcePseudoState(ctx, contrastCandidateSelector, st.pseudo); err != nil {
					return fmt.Errorf("%w: forcing :%s: %w", domain.ErrEvaluation, st.pseudo[0], err)
				}
			}
			var samples []contrastSample
			if err := evaluate(ctx, page, "sampling "+st.name+" colors", contrastSampleJS, &samples); err != nil {
				return err
			}
			if st.pseudo != nil {
				if err := page.ForcePseudoState(ctx, contrastCandidateSelector, nil); err != nil {
					return fmt.Errorf("%w: clearing forced state: %w", domain.ErrEvaluation, err)
				}
			}

			for _, sample := range samples {
				state := st.name
				if sample.Disabled {
					// disabled controls do not react to hover or focus
					if st.name != domain.StateDefault {
						continue
					}
					state = domain.StateDisabled
				}
				details.Checked++
				if v, failed := judge(sample, state); failed {
					details.Violations = append(details.Violations, v)
					details.ByState[state]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	errs, warnings := classify(details.Violations,
		func(v domain.ContrastViolation) bool { return v.State != domain.StateDisabled },
		func(v domain.ContrastViolation) string {
			return fmt.Sprintf("[%s] %s (%s): %s on %s is %.2f:1, needs %.1f:1",
				v.Severity, v.Element, v.State, v.Foreground, v.Background, v.Ratio, v.Required)
		},
	)

	s.session.logger.Info("contrast audit complete",
		zap.String("component", src.Name),
		zap.Int("checked", details.Checked),
		zap.Int("violations", len(details.Violations)),
	)
	return domain.NewValidationResult(domain.ValidatorContrast, errs, warnings, details), nil
}

func judge(s contrastSample, state string) (domain.ContrastViolation, bool) {
	fg, bg, kind, ok := s.pair()
	if !ok {
		return domain.ContrastViolation{}, false
	}
	ratio := color.ContrastRatio(fg, bg)
	if color.MeetsAA(ratio, kind) {
		return domain.ContrastViolation{}, false
	}

	required := color.RequiredAA(kind)
	severity := domain.SeveritySerious
	if state == domain.StateDisabled {
		severity = domain.SeverityMinor
	}
	v := domain.ContrastViolation{
		Element:    s.Element,
		State:      state,
		Kind:       string(kind),
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Ratio:      math.Round(ratio*100) / 100,
		Required:   required,
		Severity:   severity,
	}
	for _, sug := range color.SuggestAccessible(fg, bg, required) {
		v.Suggestions = append(v.Suggestions, domain.ColorSuggestion{
			Strategy:   sug.Strategy,
			Foreground: sug.Foreground.Hex(),
			Background: sug.Background.Hex(),
			Ratio:      math.Round(sug.Ratio*100) / 100,
		})
	}
	return v, true
}
