package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elolang/elo/internal/compiler"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Expr    string
	Target  string
	Prelude bool
	Output  string
}

// CompileResult is the JSON payload of a successful compilation.
type CompileResult struct {
	Target    string `json:"target"`
	Code      string `json:"code,omitempty"`
	Fragment  string `json:"fragment,omitempty"`
	UsesInput bool   `json:"uses_input"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile an expression to target code",
		Long: `Compile an Elo expression to JavaScript, Ruby or SQL.

The expression is read from -e or from a file argument. A type
definition compiles to a canonical JSON type fragment instead of
target code.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "expression to compile")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", "js", "target language (js|ruby|sql)")
	cmd.Flags().BoolVar(&opts.Prelude, "prelude", false, "prepend the target runtime header")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
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

	target, err := compiler.ParseTarget(opts.Target)
	if err != nil {
		formatter.Error(id, ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, "invalid target")
	}

	formatter.VerboseLog("compiling %d byte(s) for %s [%s]", len(source), target, id)

	override, hasOverride := cfg.Preludes[string(target)]
	result, err := compiler.Compile(source, target, compiler.Options{
		MaxDepth:      cfg.MaxDepth,
		RelaxedIdents: cfg.RelaxedIdents,
		Prelude:       opts.Prelude && !hasOverride,
		Constructors:  cfg.Constructors,
	})
	if err != nil {
		code, details := classify(source, err)
		formatter.Error(id, code, err.Error(), details)
		return NewExitError(ExitFailure, "compilation failed")
	}

	code := result.Code
	if result.Fragment != nil {
		code = string(result.Fragment)
	} else if opts.Prelude && hasOverride && override != "" {
		code = override + "\n" + code
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(code+"\n"), 0o644); err != nil {
			formatter.Error(id, ErrCodeIO, fmt.Sprintf("writing output file: %v", err), nil)
			return NewExitError(ExitCommandError, "write failed")
		}
		formatter.VerboseLog("wrote %s", opts.Output)
	}

	if formatter.Format == "json" {
		payload := CompileResult{Target: string(target), UsesInput: result.UsesInput}
		if result.Fragment != nil {
			payload.Fragment = string(result.Fragment)
		} else {
			payload.Code = code
		}
		return formatter.Success(id, payload)
	}

	formatter.VerboseLog("uses input: %v", result.UsesInput)
	return formatter.Success(id, code)
}

// readSource resolves the expression source: -e wins, then a file
// argument.
func readSource(expr string, args []string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("an expression is required: pass -e or a file argument")
}
