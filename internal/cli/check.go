package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pgqlir/internal/queryir"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Portable bool     `json:"portable"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <expr>",
		Short: "Report validation warnings for an expression",
		Long: `Check an expression for problems the parser accepts but a backend would
reject: nested aggregates, a misplaced wildcard, graph functions on the wrong
kind of variable, sparse bind parameters and functions without a SQL lowering.

Deprecated functions and sparse bind parameters are reported as warnings but
still lower to SQL. Exits with code 1 when the expression cannot be lowered.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			e, _, err := parseExprArg(rootOpts, f, args[0])
			if err != nil {
				return err
			}

			result := queryir.Validate(e)
			f.VerboseLog("Found %d warning(s)", len(result.Warnings))
			if result.IsPortable {
				return outputCheckSuccess(f, result.Warnings)
			}
			return outputCheckWarnings(f, result)
		},
	}
}

func outputCheckSuccess(f *OutputFormatter, warnings []string) error {
	if f.Format == "json" {
		return f.Success(CheckResult{Portable: true, Warnings: warnings})
	}
	if len(warnings) == 0 {
		return f.Success("ok: expression is portable")
	}
	return f.Success("ok: expression is portable with " + formatWarnings(warnings))
}

func formatWarnings(warnings []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d warning(s)", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&b, "\n  - %s", w)
	}
	return b.String()
}

func outputCheckWarnings(f *OutputFormatter, result queryir.ValidationResult) error {
	failure := WrapExitError(ExitFailure, fmt.Sprintf("check failed with %d warning(s)", len(result.Warnings)), result.Err())

	if f.Format == "json" {
		err := f.encode(CLIResponse{
			Status: "error",
			Data:   CheckResult{Portable: false, Warnings: result.Warnings},
			Error: &CLIError{
				Code:    ErrCodeNotPortable,
				Message: result.Warnings[0],
			},
			TraceID: f.TraceID,
		})
		if err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(f.Writer, "not portable: "+formatWarnings(result.Warnings))
	return failure
}
