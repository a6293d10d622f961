package cli

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/pgqlir/internal/pgql"
	"github.com/roach88/pgqlir/internal/queryir"
)

// parseExprArg builds the scope from the global flags and parses src in it.
// Failures are written through f and returned as command errors.
func parseExprArg(opts *RootOptions, f *OutputFormatter, src string) (queryir.Expr, pgql.Scope, error) {
	scope, err := LoadScope(opts.ScopeFile, opts.Vars)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, nil, fail(f, ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return nil, nil, fail(f, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	f.VerboseLog("Scope: %s", strings.Join(scope.Names(), ", "))

	e, err := pgql.ParseExpr(src, scope)
	if err != nil {
		code := ErrCodeParse
		if errors.Is(err, queryir.ErrUnresolvedVariable) {
			code = ErrCodeUnresolved
		}
		return nil, nil, fail(f, ExitCommandError, code, err.Error(), nil)
	}
	opts.Logger.Debug("parsed expression",
		zap.String("trace_id", f.TraceID),
		zap.Stringer("kind", e.Kind()),
		zap.Uint64("hash", e.Hash()),
	)
	return e, scope, nil
}

// fail reports an error through f and returns it with the given exit code.
func fail(f *OutputFormatter, exitCode int, code, message string, details any) error {
	_ = f.Error(code, message, details)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}
