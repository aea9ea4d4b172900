package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rstexpand/internal/configloader"
	"github.com/yaklabco/rstexpand/internal/logging"
	"github.com/yaklabco/rstexpand/pkg/config"
	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/render"
	"github.com/yaklabco/rstexpand/pkg/reporter"
	"github.com/yaklabco/rstexpand/pkg/resolve"
	"github.com/yaklabco/rstexpand/pkg/rst"
	"github.com/yaklabco/rstexpand/pkg/runner"
)

type expandFlags struct {
	strict     bool
	maxDepth   int
	format     string
	showIndex  bool
	numbered   bool
	write      bool
	out        string
	resolver   string
	docIndex   string
	truncation string
	ignore     []string
	extensions []string
	jobs       int
	noSummary  bool
}

func newExpandCommand() *cobra.Command {
	flags := &expandFlags{}

	cmd := &cobra.Command{
		Use:   "expand [paths...]",
		Short: "Expand auto directives in reStructuredText files",
		Long:  expandLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args, flags)
		},
	}

	addExpandFlags(cmd, flags)

	return cmd
}

const expandLongDescription = `Expand auto directives in reStructuredText files.

By default, expands all .rst, .rest, and .txt files in the current
directory and subdirectories, printing the result to stdout. Specify
paths to expand specific files or directories, or "-" to read stdin.

Examples:
  rstexpand expand                        # Expand current directory
  rstexpand expand docs/                  # Expand docs directory
  rstexpand expand api.rst                # Expand single file
  rstexpand expand --write docs/          # Rewrite files in place
  rstexpand expand --index --numbered -   # Stdin with symbol index
  rstexpand expand --format json          # Output as JSON for CI
  rstexpand expand --strict               # Abort on the first failure`

func runExpand(cmd *cobra.Command, args []string, flags *expandFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return WithExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldPolicy, finalCfg.Policy,
		logging.FieldResolver, finalCfg.Resolver,
		logging.FieldMaxDepth, finalCfg.MaxDepth,
		logging.FieldJobs, finalCfg.Jobs,
	)

	resolver, err := buildResolver(finalCfg, workDir)
	if err != nil {
		return WithExitCode(ExitConfigError, err)
	}

	engine := expand.NewEngine(resolver, expand.Options{
		Policy:   expand.Policy(finalCfg.Policy),
		MaxDepth: finalCfg.MaxDepth,
		Renderer: &render.Renderer{
			Truncation: render.TruncationPolicy(finalCfg.Truncation),
		},
	})

	var result *runner.Result
	if len(args) == 1 && args[0] == "-" {
		result, err = expandStdin(ctx, cmd.InOrStdin(), engine, finalCfg)
		if err != nil {
			return WithExitCode(ExitIOError, err)
		}
	} else {
		result, err = runner.New(engine).Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			Extensions:   finalCfg.Extensions,
			ExcludeGlobs: finalCfg.Ignore,
			Jobs:         finalCfg.Jobs,
			Config:       finalCfg,
		})
		if err != nil {
			return WithExitCode(ExitIOError, errors.Join(errors.New("expansion run failed"), err))
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	writer, closeWriter, err := outputWriter(cmd, finalCfg.OutPath)
	if err != nil {
		return WithExitCode(ExitIOError, err)
	}
	defer closeWriter()

	rep, err := reporter.New(reporter.Options{
		Writer:       writer,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       reporter.Format(finalCfg.Format),
		Color:        colorMode,
		ShowExpanded: !finalCfg.Write,
		Numbered:     finalCfg.Numbered,
		ShowIndex:    finalCfg.ShowIndex,
		ShowSummary:  !flags.noSummary,
		ShowHeaders:  true,
		WorkingDir:   workDir,
	})
	if err != nil {
		return WithExitCode(ExitInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return WithExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if exitCode := ExitCodeFromResult(result); exitCode != ExitSuccess {
		return WithExitCode(exitCode, ErrIssuesFound)
	}
	return nil
}

// cliConfig maps CLI flags onto a Config carrying only explicitly
// provided values, so lower-precedence layers survive the merge.
func cliConfig(cmd *cobra.Command, flags *expandFlags) *config.Config {
	cfg := &config.Config{}

	if flags.strict {
		cfg.Policy = "strict"
	}
	cfg.MaxDepth = flags.maxDepth
	cfg.Format = config.OutputFormat(flags.format)
	cfg.DocIndex = flags.docIndex
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.Jobs = flags.jobs
	cfg.ShowIndex = flags.showIndex
	cfg.Numbered = flags.numbered
	cfg.Write = flags.write
	cfg.OutPath = flags.out
	if cmd.Flags().Changed("resolver") {
		cfg.Resolver = config.ResolverMode(flags.resolver)
	}
	if cmd.Flags().Changed("truncation") {
		cfg.Truncation = flags.truncation
	}

	return cfg
}

// buildResolver constructs the namespace resolver selected by cfg.
func buildResolver(cfg *config.Config, workDir string) (resolve.Resolver, error) {
	switch cfg.Resolver {
	case config.ResolverIndex:
		return loadIndexResolver(cfg.DocIndex)
	case config.ResolverGo:
		return resolve.NewPackageResolver(workDir), nil
	default: // auto
		pkgResolver := resolve.NewPackageResolver(workDir)
		if cfg.DocIndex == "" {
			return pkgResolver, nil
		}
		index, err := loadIndexResolver(cfg.DocIndex)
		if err != nil {
			return nil, err
		}
		return resolve.Chain(index, pkgResolver), nil
	}
}

func loadIndexResolver(path string) (resolve.Resolver, error) {
	if path == "" {
		return nil, errors.New("resolver \"index\" requires --doc-index")
	}
	index, err := resolve.LoadIndex(path)
	if err != nil {
		return nil, fmt.Errorf("load doc index: %w", err)
	}
	return index, nil
}

// expandStdin expands a single document read from stdin.
func expandStdin(ctx context.Context, in io.Reader, engine *expand.Engine, cfg *config.Config) (*runner.Result, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	buf := rst.FromText(string(content))
	res, err := engine.Expand(ctx, buf)

	outcome := runner.FileOutcome{Path: "<stdin>", Result: res}
	if err != nil {
		outcome.Error = err
	}
	if cfg.ShowIndex && res != nil {
		outcome.Symbols = expand.BuildIndex(rst.NewBuffer(res.Lines))
	}

	return runner.NewResult(outcome), nil
}

// outputWriter selects the expanded-content destination.
func outputWriter(cmd *cobra.Command, outPath string) (io.Writer, func(), error) {
	if outPath == "" || outPath == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func addExpandFlags(cmd *cobra.Command, flags *expandFlags) {
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "abort on the first expansion failure")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "recursion depth beyond the initial directive (0 = default)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().BoolVar(&flags.showIndex, "index", false, "print the symbol index after each document")
	cmd.Flags().BoolVarP(&flags.numbered, "numbered", "n", false, "prefix output lines with line numbers")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite input files in place")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write expanded output to a file instead of stdout")
	cmd.Flags().StringVar(&flags.resolver, "resolver", "auto", "namespace resolver: auto, index, go")
	cmd.Flags().StringVar(&flags.docIndex, "doc-index", "", "path to a YAML documentation index")
	cmd.Flags().StringVar(&flags.truncation, "truncation", "nearest",
		"summary truncation policy: nearest, blank-line, newline")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions treated as reStructuredText")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&flags.noSummary, "quiet", "q", false, "suppress the run summary")
}
