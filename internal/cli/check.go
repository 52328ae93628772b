package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/transform"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Expr    string
	Relaxed bool
}

// NewCheckCommand creates the check command: parse and type an
// expression without generating target code, printing the canonical
// IR rendering.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and type an expression, printing canonical IR",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "expression to check")
	cmd.Flags().BoolVar(&opts.Relaxed, "relaxed", false, "admit unknown identifiers as column references")

	return cmd
}

func runCheck(opts *CheckOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	id := uuid.NewString()

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		formatter.Error(id, ErrCodeConfig, err.Error(), nil)
		return NewExitError(ExitCommandError, "invalid config")
	}

	source, err := readSource(opts.Expr, args)
	if err != nil {
		formatter.Error(id, ErrCodeIO, err.Error(), nil)
		return NewExitError(ExitCommandError, "no expression")
	}

	canonical, err := checkSource(source, cfg, opts.Relaxed)
	if err != nil {
		code, details := classify(source, err)
		formatter.Error(id, code, err.Error(), details)
		return NewExitError(ExitFailure, "check failed")
	}

	return formatter.Success(id, string(canonical))
}

// checkSource runs the front half of the pipeline and renders the
// canonical JSON form of the result.
func checkSource(source string, cfg *Config, relaxed bool) ([]byte, error) {
	expr, err := parser.New(source, parser.Options{MaxDepth: cfg.MaxDepth}).Parse()
	if err != nil {
		return nil, err
	}

	tr := transform.New(transform.Options{
		MaxDepth:      cfg.MaxDepth,
		RelaxedIdents: relaxed || cfg.RelaxedIdents,
	})

	if def, ok := expr.(*ast.TypeDef); ok {
		lowered, err := tr.LowerTypeDef(def, cfg.Constructors)
		if err != nil {
			return nil, err
		}
		return ir.MarshalCanonicalType(lowered)
	}

	node, err := tr.Lower(expr)
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(node)
}
