package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pgqlir/internal/queryir"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tree <expr>",
		Short:         "Dump the expression tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			e, _, err := parseExprArg(rootOpts, f, args[0])
			if err != nil {
				return err
			}

			tree := strings.TrimRight(queryir.Tree(e), "\n")
			if f.Format == "json" {
				return f.Success(map[string]string{"tree": tree})
			}
			return f.Success(tree)
		},
	}
}
