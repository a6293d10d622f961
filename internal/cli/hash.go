package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pgqlir/internal/queryir"
)

// HashResult is the JSON payload of the hash command.
type HashResult struct {
	// Hash is the in-process structural hash, in hex.
	Hash string `json:"hash"`
	// Fingerprint is stable across processes and ignores differences in
	// Unicode normalization.
	Fingerprint string `json:"fingerprint"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <expr>",
		Short: "Print the structural hash and fingerprint of an expression",
		Long: `Print the 64-bit structural hash of an expression and its fingerprint.

Equal trees always have equal hashes. The fingerprint is a SHA-256 over the
canonical JSON form of the tree and can be stored and compared across runs.
Canonical JSON normalizes text to NFC, so expressions that differ only in the
Unicode composition of their strings or names share a fingerprint but not a
hash.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			e, _, err := parseExprArg(rootOpts, f, args[0])
			if err != nil {
				return err
			}

			fp, err := queryir.Fingerprint(e)
			if err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
			}
			result := HashResult{Hash: fmt.Sprintf("%016x", e.Hash()), Fingerprint: fp}
			if f.Format == "json" {
				return f.Success(result)
			}
			return f.Success(fmt.Sprintf("hash:        %s\nfingerprint: %s", result.Hash, result.Fingerprint))
		},
	}
}
