package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/pgqlir/internal/pgql"
)

// PrintResult is the JSON payload of the print command.
type PrintResult struct {
	Expr string `json:"expr"`
	Kind string `json:"kind"`
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print <expr>",
		Short: "Print an expression in canonical form",
		Long: `Parse an expression and print it back in canonical form.

The canonical form parses back to the same expression tree.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			e, _, err := parseExprArg(rootOpts, f, args[0])
			if err != nil {
				return err
			}

			printed := pgql.Print(e)
			if f.Format == "json" {
				return f.Success(PrintResult{Expr: printed, Kind: e.Kind().String()})
			}
			return f.Success(printed)
		},
	}
}
