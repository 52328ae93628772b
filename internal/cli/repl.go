package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/elolang/elo/internal/compiler"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Target string
}

// NewReplCommand creates the repl command: an interactive loop that
// compiles each line for the current target.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "repl",
		Short:         "Interactive compilation loop",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "js", "target language (js|ruby|sql)")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	target, err := compiler.ParseTarget(opts.Target)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	historyPath := historyFile()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			rl.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if historyPath == "" {
			return
		}
		if f, err := os.Create(historyPath); err == nil {
			rl.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "elo repl, target %s. :target <t> switches, :quit exits.\n", target)
	for {
		input, err := rl.Prompt("elo> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		rl.AppendHistory(input)

		if strings.HasPrefix(line, ":") {
			switch fields := strings.Fields(line); fields[0] {
			case ":quit", ":q":
				return nil
			case ":target":
				if len(fields) != 2 {
					fmt.Fprintln(out, "usage: :target js|ruby|sql")
					continue
				}
				next, err := compiler.ParseTarget(fields[1])
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				target = next
				fmt.Fprintf(out, "target is now %s\n", target)
			default:
				fmt.Fprintf(out, "unknown command %s\n", fields[0])
			}
			continue
		}

		result, err := compiler.Compile(line, target, compiler.Options{
			MaxDepth:      cfg.MaxDepth,
			RelaxedIdents: cfg.RelaxedIdents,
			Constructors:  cfg.Constructors,
		})
		if err != nil {
			_, details := classify(line, err)
			fmt.Fprintln(out, err)
			if details != nil {
				fmt.Fprintln(out, details)
			}
			continue
		}
		if result.Fragment != nil {
			fmt.Fprintln(out, string(result.Fragment))
		} else {
			fmt.Fprintln(out, result.Code)
		}
	}
}

// historyFile returns the REPL history path, empty when no home
// directory is available.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".elo_history")
}
