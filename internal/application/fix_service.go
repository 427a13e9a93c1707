package application

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/fix"
)

// FixService applies rule-based source fixes and optionally writes them back.
type FixService struct {
	fixer  *fix.Fixer
	logger *zap.Logger
}

func NewFixService(parser domain.JSXParser, logger *zap.Logger) *FixService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixService{fixer: fix.New(parser), logger: logger}
}

// Fix patches code in memory.
func (s *FixService) Fix(code string, violations domain.ViolationSet) *domain.AutoFixResult {
	res := s.fixer.Fix(code, violations)
	s.logger.Info("auto-fix complete",
		zap.Int("fixed", len(res.Fixed)),
		zap.Int("unfixed", len(res.Unfixed)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res
}

// FixFile patches the component at path. With opts.Write the file is
// rewritten only when at least one fix applied.
func (s *FixService) FixFile(path string, violations domain.ViolationSet, opts domain.FixOptions) (*domain.AutoFixResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading component: %w", err)
	}
	res := s.Fix(string(data), violations)

	if opts.Write && res.HasFixes() {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat component: %w", err)
		}
		if err := os.WriteFile(path, []byte(res.Code), info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("writing fixed component: %w", err)
		}
		s.logger.Debug("fixed component written", zap.String("path", path))
	}
	return res, nil
}
