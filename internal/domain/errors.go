package domain

import "errors"

// Infrastructure failures. These mean an audit could not run and are never
// folded into a failing ValidationResult.
var (
	ErrBrowserLaunch   = errors.New("browser launch failed")
	ErrRenderTimeout   = errors.New("component did not render in time")
	ErrScriptInjection = errors.New("script injection failed")
	ErrEvaluation      = errors.New("page evaluation failed")
)

// IsInfrastructure reports whether err is one of the infrastructure
// failures above.
func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrBrowserLaunch) ||
		errors.Is(err, ErrRenderTimeout) ||
		errors.Is(err, ErrScriptInjection) ||
		errors.Is(err, ErrEvaluation)
}
