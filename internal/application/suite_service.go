package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

// SuiteRequest is the input of a full validation run.
type SuiteRequest struct {
	Source        domain.ComponentSource
	Variants      []string
	ComponentType domain.ComponentType
	Styles        map[string]string
	Tokens        *domain.DesignTokens
	Computed      bool
	// ProjectPath is where history is kept and the commit is read from.
	ProjectPath string
}

// SuiteService runs every enabled validator in parallel on the shared
// browser and records the run.
type SuiteService struct {
	runner   domain.ParallelRunner
	a11y     *A11yService
	keyboard *KeyboardService
	focus    *FocusService
	contrast *ContrastService
	tokens   *TokenService
	git      domain.GitInfo
	history  domain.RunHistory
	cfg      domain.ProjectConfig
	logger   *zap.Logger
}

// Validators bundles the per-dimension services a suite runs.
type Validators struct {
	A11y     *A11yService
	Keyboard *KeyboardService
	Focus    *FocusService
	Contrast *ContrastService
	Tokens   *TokenService
}

func NewSuiteService(
	runner domain.ParallelRunner,
	validators Validators,
	git domain.GitInfo,
	history domain.RunHistory,
	cfg domain.ProjectConfig,
	logger *zap.Logger,
) *SuiteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuiteService{
		runner:   runner,
		a11y:     validators.A11y,
		keyboard: validators.Keyboard,
		focus:    validators.Focus,
		contrast: validators.Contrast,
		tokens:   validators.Tokens,
		git:      git,
		history:  history,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes the suite. Infrastructure failures of individual validators
// are recorded in SuiteReport.Failures; the other results are still
// returned.
func (s *SuiteService) Run(ctx context.Context, req SuiteRequest) *domain.SuiteReport {
	report := &domain.SuiteReport{
		RunID:     uuid.New().String()[:8],
		Component: req.Source.Name,
		Timestamp: time.Now().UTC(),
		Results:   []*domain.ValidationResult{},
	}
	log := s.logger.With(zap.String("run_id", report.RunID), zap.String("component", req.Source.Name))

	if req.ProjectPath != "" && s.git != nil && s.git.IsGitRepo(req.ProjectPath) {
		if hash, err := s.git.CommitHash(req.ProjectPath); err == nil {
			report.CommitHash = hash
		} else {
			log.Warn("reading commit hash", zap.Error(err))
		}
	}

	type job struct {
		name  string
		thunk domain.Thunk
	}
	var jobs []job
	add := func(name string, t domain.Thunk) {
		if s.cfg.IsSkipped(name) {
			log.Debug("validator skipped by config", zap.String("validator", name))
			return
		}
		jobs = append(jobs, job{name, t})
	}

	add(domain.ValidatorA11y, func(ctx context.Context) (*domain.ValidationResult, error) {
		return s.a11y.Validate(ctx, req.Source, req.Variants)
	})
	add(domain.ValidatorKeyboard, func(ctx context.Context) (*domain.ValidationResult, error) {
		return s.keyboard.Validate(ctx, req.Source, req.ComponentType)
	})
	add(domain.ValidatorFocus, func(ctx context.Context) (*domain.ValidationResult, error) {
		return s.focus.Validate(ctx, req.Source)
	})
	add(domain.ValidatorContrast, func(ctx context.Context) (*domain.ValidationResult, error) {
		return s.contrast.Validate(ctx, req.Source)
	})
	add(domain.ValidatorTokens, func(ctx context.Context) (*domain.ValidationResult, error) {
		return s.tokens.Validate(ctx, TokenRequest{
			Source:   req.Source,
			Styles:   req.Styles,
			Tokens:   req.Tokens,
			Computed: req.Computed,
		})
	})

	thunks := make([]domain.Thunk, len(jobs))
	for i, j := range jobs {
		thunks[i] = j.thunk
	}
	outcomes := s.runner.RunParallel(ctx, thunks...)

	for i, o := range outcomes {
		name := jobs[i].name
		if o.Err != nil {
			if report.Failures == nil {
				report.Failures = map[string]string{}
			}
			report.Failures[name] = o.Err.Error()
			log.Warn("validator could not run", zap.String("validator", name), zap.Error(o.Err))
			continue
		}
		report.Results = append(report.Results, o.Result)
	}

	log.Info("suite complete",
		zap.Int("validators", len(jobs)),
		zap.Int("failures", len(report.Failures)),
		zap.Bool("passed", report.Passed()),
	)

	if req.ProjectPath != "" && s.history != nil {
		if err := s.history.Save(req.ProjectPath, entryFor(report)); err != nil {
			log.Warn("saving run history", zap.Error(err))
		}
	}
	return report
}

func entryFor(r *domain.SuiteReport) domain.RunEntry {
	validators := make(map[string]bool, len(r.Results))
	for _, res := range r.Results {
		validators[res.Validator] = res.Valid
	}
	for name := range r.Failures {
		validators[name] = false
	}
	return domain.RunEntry{
		RunID:      r.RunID,
		Timestamp:  r.Timestamp.Format(time.RFC3339),
		Component:  r.Component,
		CommitHash: r.CommitHash,
		Passed:     r.Passed(),
		Validators: validators,
	}
}
