package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/focus"
)

// FocusService tabs through a rendered component and checks each focus
// indicator.
type FocusService struct {
	session browserSession
}

func NewFocusService(pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) *FocusService {
	return &FocusService{session: newBrowserSession(pool, cfg, logger)}
}

// Validate checks every focusable element in DOM order. A component with
// nothing focusable passes with a note.
func (s *FocusService) Validate(ctx context.Context, src domain.ComponentSource) (*domain.ValidationResult, error) {
	details := &domain.FocusDetails{
		Checked: []domain.FocusCheck{},
		Issues:  []domain.FocusIssue{},
	}

	err := s.session.run(ctx, domain.ValidatorFocus, func(ctx context.Context, page domain.Page) error {
		if err := s.session.render(ctx, page, src, nil); err != nil {
			return err
		}
		var targets []focusTarget
		if err := evaluate(ctx, page, "listing focusable elements", tagFocusableJS, &targets); err != nil {
			return err
		}
		if len(targets) == 0 {
			details.Note = "no focusable elements; focus indicators not applicable"
			return nil
		}

		for range targets {
			if err := press(ctx, page, domain.KeyTab); err != nil {
				return err
			}
			var active focusTarget
			if err := evaluate(ctx, page, "reading active element", activeElementJS, &active); err != nil {
				return err
			}
			var style *domain.FocusStyle
			if err := evaluate(ctx, page, "reading focus style", focusStyleJS, &style); err != nil {
				return err
			}
			if style == nil {
				// focus left the document
				continue
			}
			details.Checked = append(details.Checked, domain.FocusCheck{
				Element:      active.Element,
				HasIndicator: focus.HasIndicator(*style),
				Styles:       style,
			})
			details.Issues = append(details.Issues, focus.Check(active.Element, *style)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	errs, warnings := classify(details.Issues,
		func(i domain.FocusIssue) bool { return i.Severity == domain.SeverityCritical },
		func(i domain.FocusIssue) string { return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Type, i.Message) },
	)

	s.session.logger.Info("focus audit complete",
		zap.String("component", src.Name),
		zap.Int("checked", len(details.Checked)),
		zap.Int("issues", len(details.Issues)),
	)
	return domain.NewValidationResult(domain.ValidatorFocus, errs, warnings, details), nil
}
