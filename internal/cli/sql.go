package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pgqlir/internal/querysql"
)

// SQLResult is the JSON payload of the sql command.
type SQLResult struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// SQLOptions holds flags for the sql command.
type SQLOptions struct {
	Binds []string
	Match string
}

// NewSQLCommand creates the sql command.
func NewSQLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SQLOptions{}

	cmd := &cobra.Command{
		Use:   "sql <expr>",
		Short: "Lower an expression to a parameterized SQLite expression",
		Long: `Lower an expression to SQLite over the vertices/edges property graph
layout. Literals are never interpolated: they appear as ? placeholders with
their values listed separately.

With --match, the expression is lowered as the filter of a full query
selecting every row bound to the named variable.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Binds, "bind", nil, "value of the next ? parameter (repeatable)")
	cmd.Flags().StringVar(&opts.Match, "match", "", "lower as the filter of a query over this variable")

	return cmd
}

func runSQL(rootOpts *RootOptions, opts *SQLOptions, src string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)
	e, scope, err := parseExprArg(rootOpts, f, src)
	if err != nil {
		return err
	}

	binds := make([]any, len(opts.Binds))
	for i, b := range opts.Binds {
		binds[i] = parseBindValue(b)
	}
	compiler := querysql.NewSQLCompiler(binds...)

	var query string
	var params []any
	if opts.Match != "" {
		v, ok := scope.Lookup(opts.Match)
		if !ok {
			return fail(f, ExitCommandError, ErrCodeUnresolved, fmt.Sprintf("--match variable %q is not declared", opts.Match), nil)
		}
		query, params, err = compiler.CompileMatch(v, e)
	} else {
		query, params, err = compiler.Compile(e)
	}
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, querysql.ErrNotLowerable) {
			code = ErrCodeNotLowerable
		}
		return fail(f, ExitCommandError, code, err.Error(), nil)
	}

	if params == nil {
		params = []any{}
	}
	if f.Format == "json" {
		return f.Success(SQLResult{SQL: query, Params: params})
	}
	return f.Success(fmt.Sprintf("%s\n-- params: %s", query, formatParams(params)))
}

// parseBindValue reads a --bind value as an integer, a finite float or
// true/false (in any case) when it looks like one, and as a string otherwise.
func parseBindValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func formatParams(params []any) string {
	out := "["
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		if s, ok := p.(string); ok {
			out += strconv.Quote(s)
		} else {
			out += fmt.Sprint(p)
		}
	}
	return out + "]"
}
