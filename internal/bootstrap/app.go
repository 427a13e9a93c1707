// Package bootstrap wires the outbound adapters into the application
// services for the CLI and the MCP server.
package bootstrap

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/adapters/outbound/browser"
	"github.com/openkraft/uikraft/internal/adapters/outbound/config"
	"github.com/openkraft/uikraft/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/uikraft/internal/adapters/outbound/history"
	"github.com/openkraft/uikraft/internal/adapters/outbound/parser"
	"github.com/openkraft/uikraft/internal/application"
	"github.com/openkraft/uikraft/internal/domain"
)

// App holds the configured services for one process.
type App struct {
	ProjectPath string
	Config      domain.ProjectConfig
	Logger      *zap.Logger

	Loader  *config.YAMLLoader
	Git     *gitinfo.GitInfoAdapter
	History *history.FileHistory
	Pool    *browser.Pool

	A11y     *application.A11yService
	Keyboard *application.KeyboardService
	Focus    *application.FocusService
	Contrast *application.ContrastService
	Tokens   *application.TokenService
	Suite    *application.SuiteService
	Fix      *application.FixService
}

// New loads .uikraft.yaml from projectPath and builds every service. The
// browser is not launched until a validator needs it.
func New(projectPath string, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	loader := config.New()
	cfg, err := loader.Load(abs)
	if err != nil {
		return nil, err
	}
	if cfg.Runtime.AxePath != "" && !filepath.IsAbs(cfg.Runtime.AxePath) {
		cfg.Runtime.AxePath = filepath.Join(abs, cfg.Runtime.AxePath)
	}

	pool := browser.NewPool(cfg.Browser, logger.Named("browser"))
	jsx := parser.New()
	git := gitinfo.New()
	hist := history.New()

	a := &App{
		ProjectPath: abs,
		Config:      cfg,
		Logger:      logger,
		Loader:      loader,
		Git:         git,
		History:     hist,
		Pool:        pool,
		A11y:        application.NewA11yService(pool, cfg, logger.Named("a11y")),
		Keyboard:    application.NewKeyboardService(pool, cfg, logger.Named("keyboard")),
		Focus:       application.NewFocusService(pool, cfg, logger.Named("focus")),
		Contrast:    application.NewContrastService(pool, cfg, logger.Named("contrast")),
		Tokens:      application.NewTokenService(jsx, pool, cfg, logger.Named("tokens")),
		Fix:         application.NewFixService(jsx, logger.Named("fix")),
	}
	a.Suite = application.NewSuiteService(pool, application.Validators{
		A11y:     a.A11y,
		Keyboard: a.Keyboard,
		Focus:    a.Focus,
		Contrast: a.Contrast,
		Tokens:   a.Tokens,
	}, git, hist, cfg, logger.Named("suite"))
	return a, nil
}

// DesignTokens resolves the token set: an explicit path wins over
// tokens_file in the config. Nil means the built-in defaults.
func (a *App) DesignTokens(path string) (*domain.DesignTokens, error) {
	if path != "" {
		return a.Loader.LoadTokens(path)
	}
	return a.Loader.ProjectTokens(a.ProjectPath, a.Config)
}

// Close shuts the browser down and flushes the logger.
func (a *App) Close() {
	a.Pool.Close()
	_ = a.Logger.Sync()
}
