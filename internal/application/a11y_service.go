package application

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

// DefaultVariant is rendered when the caller names no variants.
const DefaultVariant = "default"

// A11yService renders component variants and runs axe-core against each.
type A11yService struct {
	session browserSession
}

func NewA11yService(pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) *A11yService {
	return &A11yService{session: newBrowserSession(pool, cfg, logger)}
}

// Validate audits every variant and merges the violations. critical and
// serious findings are errors; moderate and minor are warnings. A render
// timeout or axe injection failure is returned as an error.
func (s *A11yService) Validate(ctx context.Context, src domain.ComponentSource, variants []string) (*domain.ValidationResult, error) {
	if len(variants) == 0 {
		variants = []string{DefaultVariant}
	}

	var all []domain.A11yViolation
	err := s.session.run(ctx, domain.ValidatorA11y, func(ctx context.Context, page domain.Page) error {
		for _, variant := range variants {
			found, err := s.auditVariant(ctx, page, src, variant)
			if err != nil {
				return fmt.Errorf("variant %q: %w", variant, err)
			}
			all = append(all, found...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Impact.Rank() < all[j].Impact.Rank() })

	bySeverity := map[string]int{
		string(domain.SeverityCritical): 0,
		string(domain.SeveritySerious):  0,
		string(domain.SeverityModerate): 0,
		string(domain.SeverityMinor):    0,
	}
	for _, v := range all {
		bySeverity[string(v.Impact)]++
	}

	errs, warnings := classify(all,
		func(v domain.A11yViolation) bool { return v.Impact.Blocking() },
		formatA11y,
	)

	s.session.logger.Info("accessibility audit complete",
		zap.String("component", src.Name),
		zap.Int("variants", len(variants)),
		zap.Int("violations", len(all)),
	)

	if all == nil {
		all = []domain.A11yViolation{}
	}
	return domain.NewValidationResult(domain.ValidatorA11y, errs, warnings, &domain.A11yDetails{
		Violations:           all,
		ViolationsBySeverity: bySeverity,
		Variants:             variants,
	}), nil
}

func (s *A11yService) auditVariant(ctx context.Context, page domain.Page, src domain.ComponentSource, variant string) ([]domain.A11yViolation, error) {
	if err := s.session.render(ctx, page, src, map[string]any{"variant": variant}); err != nil {
		return nil, err
	}
	if err := s.session.harness.InjectAxe(ctx, page); err != nil {
		return nil, err
	}

	var found []domain.A11yViolation
	if err := evaluate(ctx, page, "running axe-core", axeRunJS, &found); err != nil {
		return nil, err
	}
	for i := range found {
		found[i].Variant = variant
	}
	s.session.logger.Debug("variant audited", zap.String("variant", variant), zap.Int("violations", len(found)))
	return found, nil
}

func formatA11y(v domain.A11yViolation) string {
	msg := fmt.Sprintf("[%s] %s: %s (%d node", v.Impact, v.ID, v.Help, len(v.Nodes))
	if len(v.Nodes) != 1 {
		msg += "s"
	}
	msg += ")"
	if v.Variant != "" && v.Variant != DefaultVariant {
		msg += " in variant " + v.Variant
	}
	return msg
}
