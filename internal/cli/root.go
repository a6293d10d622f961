package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to the upper-cased flag name to form the
// environment variable that supplies its default, e.g. PGQLIR_FORMAT.
const EnvPrefix = "PGQLIR"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string   // "json" | "text"
	Vars      []string // "name:type" declarations
	ScopeFile string   // .yaml, .yml or .cue

	// Logger is built from Verbose before a command runs.
	Logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pgqlir CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(viper.New())
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	opts := &RootOptions{Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "pgqlir",
		Short: "pgqlir - PGQL expression tool",
		Long: `Parse, print, validate and lower PGQL expressions.

Expressions are read from the command line. Variables they reference must be
declared with --var name:type or in a --scope file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Format = v.GetString("format")
			opts.Verbose = v.GetBool("verbose")

			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.Logger = newLogger(opts.Verbose, cmd.ErrOrStderr())
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringArrayVar(&opts.Vars, "var", nil, "declare a variable as name:type (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.ScopeFile, "scope", "", "file declaring variables (.yaml, .yml or .cue)")

	// Environment variables supply defaults for flags not given explicitly.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	mustBindPFlag(v, cmd, "format")
	mustBindPFlag(v, cmd, "verbose")

	// Add subcommands
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewSQLCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))

	return cmd
}

func mustBindPFlag(v *viper.Viper, cmd *cobra.Command, key string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)); err != nil {
		panic(err)
	}
}

// newLogger returns a development-style console logger on w when verbose is
// set, and a no-op logger otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zap.DebugLevel))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
