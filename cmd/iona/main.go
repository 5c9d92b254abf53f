package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dangerclosesec/iona"
	"github.com/dangerclosesec/iona/internal/config"
	"github.com/dangerclosesec/iona/internal/domain"
	"github.com/dangerclosesec/iona/internal/report"
	"github.com/dangerclosesec/iona/internal/service"
	"github.com/dangerclosesec/iona/internal/source"
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/model"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath  string
	minSeverity string
	fused       bool
	workers     int
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project file (defaults to ./iona.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&minSeverity, "min-severity", "s", "", "Lowest problem class to report: lint, warning or error")
	rootCmd.PersistentFlags().BoolVar(&fused, "fused", false, "Lex and parse lines in parallel")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Worker limit for fused mode")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "iona",
	Short:         "Iona is the compiler front end for the Iona language",
	Long:          `Iona lexes, parses and checks .iona source files and builds their function table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// settings merges the project config with the command line flags
func settings(cmd *cobra.Command) (*config.Config, diag.Class, error) {
	path := configPath
	if path == "" {
		path = config.Discover()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, diag.Lint, err
	}

	if cmd.Flags().Changed("min-severity") {
		cfg.Compiler.MinSeverity = minSeverity
	}
	if cmd.Flags().Changed("fused") {
		cfg.Compiler.Fused = fused
	}
	if cmd.Flags().Changed("workers") {
		cfg.Compiler.Workers = workers
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	class, err := cfg.MinSeverity()
	if err != nil {
		return nil, diag.Lint, err
	}

	setupLogger(cfg.LogLevel())
	return cfg, class, nil
}

func setupLogger(level slog.Level) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}

func newService() *service.CompileService {
	return service.NewCompileService(source.NewFileLoader(), report.NewTextReporter(os.Stderr), slog.Default())
}

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := settings(cmd); err != nil {
			return err
		}
		tokens, err := newService().Lex(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%-22s %q\n", tok.Line+1, tok.Word, tok.Symbol, tok.Text)
		}
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed nodes of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compile(cmd, args[0])
		if res == nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, n := range res.Nodes {
			line := fmt.Sprintf("%4d  %-22s", n.SourceLine+1, n.Type)
			if parent, ok := n.Parent(); ok {
				line += fmt.Sprintf(" in fn@%d", parent+1)
			}
			if n.Value != nil {
				line += "  " + n.Value.String()
			}
			fmt.Fprintln(out, line)
		}
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a source file and print its function table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compile(cmd, args[0])
		if res == nil {
			return err
		}
		out := cmd.OutOrStdout()
		res.Functions.Each(func(name string, data *model.FunctionData) {
			fmt.Fprintf(out, "fn %s\n", data.Signature(name))
			if verbose {
				for _, p := range data.Properties {
					fmt.Fprintf(out, "  property   %s\n", p)
				}
				for _, p := range data.Permissions {
					fmt.Fprintf(out, "  permission %s\n", p)
				}
				for _, c := range data.Contracts {
					fmt.Fprintf(out, "  %-10s %s -> %s\n", c.Kind, c.Condition, c.Message)
				}
			}
		})
		if err == nil {
			fmt.Fprintf(out, "%s: ok (%d functions, %d problems)\n", args[0], res.Functions.Len(), len(res.Problems))
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "iona v%s\n", version)
	},
}

func compile(cmd *cobra.Command, path string) (*iona.Result, error) {
	cfg, class, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	return newService().Compile(cmd.Context(), service.CompileInput{
		Path:        path,
		MinSeverity: class,
		Fused:       cfg.Compiler.Fused,
		Workers:     cfg.Compiler.Workers,
	})
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, domain.ErrCompilationFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
