package application

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

// Style and token provenance recorded in the token report.
const (
	StyleSourceProvided  = "provided"
	StyleSourceComputed  = "computed"
	StyleSourceExtracted = "extracted"
	TokenSourceProvided  = "provided"
	TokenSourceDefault   = "default"
)

// TokenRequest selects the style source for a token adherence run.
// Styles wins over Computed; with neither, styles are extracted from the
// source text.
type TokenRequest struct {
	Source   domain.ComponentSource
	Styles   map[string]string
	Tokens   *domain.DesignTokens
	Computed bool
}

// TokenService resolves styles and tokens and scores adherence.
type TokenService struct {
	extractor  domain.StyleExtractor
	session    browserSession
	thresholds domain.ThresholdConfig
	logger     *zap.Logger
}

// NewTokenService accepts a nil pool when computed styles are never
// requested.
func NewTokenService(extractor domain.StyleExtractor, pool domain.BrowserPool, cfg domain.ProjectConfig, logger *zap.Logger) *TokenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenService{
		extractor:  extractor,
		session:    newBrowserSession(pool, cfg, logger),
		thresholds: cfg.Thresholds,
		logger:     logger,
	}
}

func (s *TokenService) Validate(ctx context.Context, req TokenRequest) (*domain.ValidationResult, error) {
	decls, styleSource, err := s.styles(ctx, req)
	if err != nil {
		return nil, err
	}

	tokenSource := TokenSourceProvided
	if req.Tokens == nil || req.Tokens.IsEmpty() {
		req.Tokens = nil
		tokenSource = TokenSourceDefault
	}

	result := tokens.NewValidator(req.Tokens, s.thresholds).Validate(decls)
	if rep, ok := result.Details.(*tokens.Report); ok {
		rep.StyleSource = styleSource
		rep.TokenSource = tokenSource
		s.logger.Info("token audit complete",
			zap.String("component", req.Source.Name),
			zap.String("style_source", styleSource),
			zap.Int("declarations", len(decls)),
			zap.Float64("score", rep.Score),
		)
	}
	return result, nil
}

func (s *TokenService) styles(ctx context.Context, req TokenRequest) ([]domain.StyleDeclaration, string, error) {
	if req.Styles != nil {
		keys := make([]string, 0, len(req.Styles))
		for k := range req.Styles {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		decls := make([]domain.StyleDeclaration, 0, len(keys))
		for _, k := range keys {
			decls = append(decls, domain.StyleDeclaration{Property: k, Value: req.Styles[k], Source: domain.StyleSourceComputed})
		}
		return decls, StyleSourceProvided, nil
	}

	if req.Computed {
		if s.session.pool == nil {
			return nil, "", fmt.Errorf("computed styles requested but no browser pool configured")
		}
		var decls []domain.StyleDeclaration
		err := s.session.run(ctx, domain.ValidatorTokens, func(ctx context.Context, page domain.Page) error {
			if err := s.session.render(ctx, page, req.Source, nil); err != nil {
				return err
			}
			return evaluate(ctx, page, "reading computed styles", computedStylesJS, &decls)
		})
		if err != nil {
			return nil, "", err
		}
		for i := range decls {
			decls[i].Source = domain.StyleSourceComputed
		}
		return decls, StyleSourceComputed, nil
	}

	decls, err := s.extractor.ExtractStyles(req.Source.Code)
	if err != nil {
		return nil, "", fmt.Errorf("extracting styles: %w", err)
	}
	return decls, StyleSourceExtracted, nil
}
