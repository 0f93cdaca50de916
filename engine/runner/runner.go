// Package runner is the tool-side adapter: it gives an executable the
// standard trio of entry points the orchestrator relies on. A tool can emit
// its contract, execute a resolved contract document, or run directly from
// positional arguments for interactive use.
package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toolpact/toolpact/engine/contract"
	"github.com/toolpact/toolpact/engine/option"
	"github.com/toolpact/toolpact/engine/resolver"
	"github.com/toolpact/toolpact/pkg/logger"
)

// RunFunc executes the tool's work against a fully resolved contract.
type RunFunc func(ctx context.Context, rtc *contract.ResolvedToolContract, log logger.Logger) error

// Tool pairs a declared contract with its implementation.
type Tool struct {
	Contract *contract.ToolContract
	Run      RunFunc

	// Fs defaults to the OS filesystem.
	Fs afero.Fs
}

func (t *Tool) fs() afero.Fs {
	if t.Fs != nil {
		return t.Fs
	}
	return afero.NewOsFs()
}

// Command builds the tool's command line. Flags mirror the contract's option
// schemas; positional arguments are the input files followed by the output
// files when no resolved contract document is given.
func (t *Tool) Command() *cobra.Command {
	var (
		emitContract bool
		rtcPath      string
		outputDir    string
		tmpDir       string
		logDir       string
		maxNproc     int
		maxNchunks   int
		logLevel     string
		logJSON      bool
	)

	tc := t.Contract
	cmd := &cobra.Command{
		Use:          tc.ID,
		Short:        tc.Name,
		Long:         tc.Description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetupLogger(logLevel, logJSON)
			log := logger.GetDefault()

			if emitContract {
				data, err := contract.MarshalToolContract(tc)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if rtcPath != "" {
				rtc, err := contract.LoadResolvedToolContract(t.fs(), rtcPath)
				if err != nil {
					return err
				}
				if rtc.ID != tc.ID {
					return fmt.Errorf("resolved contract %q does not belong to tool %q", rtc.ID, tc.ID)
				}
				return t.Run(cmd.Context(), rtc, log)
			}

			rtc, err := t.resolveFromArgs(cmd.Flags(), args, resolver.Options{
				OutputDir:  outputDir,
				TmpDir:     tmpDir,
				LogDir:     logDir,
				MaxNproc:   maxNproc,
				MaxNchunks: maxNchunks,
			})
			if err != nil {
				return err
			}
			return t.Run(cmd.Context(), rtc, log)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&emitContract, "emit-tool-contract", false, "print the tool contract as JSON and exit")
	flags.StringVar(&rtcPath, "resolved-tool-contract", "", "path to a resolved tool contract to execute")
	flags.StringVar(&outputDir, "output-dir", ".", "directory for synthesized output paths")
	flags.StringVar(&tmpDir, "tmp-dir", os.TempDir(), "directory for temporary resources")
	flags.StringVar(&logDir, "log-dir", "", "directory for log file resources (defaults to output dir)")
	flags.IntVar(&maxNproc, "nproc", 1, "maximum processors granted to this run")
	flags.IntVar(&maxNchunks, "max-nchunks", 24, "maximum chunk count granted to this run")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	registerOptionFlags(flags, tc.Options)

	return cmd
}

// Execute runs the tool's command against os.Args.
func (t *Tool) Execute(ctx context.Context) error {
	return t.Command().ExecuteContext(ctx)
}

// resolveFromArgs builds a resolved contract for the direct invocation path:
// positional inputs and outputs plus whatever option flags were set.
func (t *Tool) resolveFromArgs(flags *pflag.FlagSet, args []string, opts resolver.Options) (*contract.ResolvedToolContract, error) {
	tc := t.Contract
	nIn, nOut := len(tc.InputTypes), len(tc.OutputTypes)
	switch len(args) {
	case nIn:
		opts.InputFiles = args
	case nIn + nOut:
		opts.InputFiles = args[:nIn]
		opts.OutputFiles = args[nIn:]
	default:
		return nil, fmt.Errorf("expected %d input files (optionally followed by %d output files), got %d arguments",
			nIn, nOut, len(args))
	}
	taskOptions, err := collectOptionFlags(flags, tc.Options)
	if err != nil {
		return nil, err
	}
	opts.TaskOptions = taskOptions
	return resolver.Resolve(tc, opts)
}

// registerOptionFlags declares one flag per option schema, typed to match.
func registerOptionFlags(flags *pflag.FlagSet, schemas option.SchemaSet) {
	for _, s := range schemas {
		help := s.Description
		if help == "" {
			help = s.Name
		}
		switch s.Type {
		case option.TypeInt:
			flags.Int(s.ID, s.Default.Int(), help)
		case option.TypeFloat:
			flags.Float64(s.ID, s.Default.Float(), help)
		case option.TypeBool:
			flags.Bool(s.ID, s.Default.Bool(), help)
		case option.TypeString:
			flags.String(s.ID, s.Default.Str(), help)
		}
	}
}

// collectOptionFlags gathers only the flags the caller actually set, so
// contract defaults still apply during resolution.
func collectOptionFlags(flags *pflag.FlagSet, schemas option.SchemaSet) (map[string]any, error) {
	out := make(map[string]any)
	for _, s := range schemas {
		if !flags.Changed(s.ID) {
			continue
		}
		var (
			v   any
			err error
		)
		switch s.Type {
		case option.TypeInt:
			v, err = flags.GetInt(s.ID)
		case option.TypeFloat:
			v, err = flags.GetFloat64(s.ID)
		case option.TypeBool:
			v, err = flags.GetBool(s.ID)
		case option.TypeString:
			v, err = flags.GetString(s.ID)
		}
		if err != nil {
			return nil, err
		}
		out[s.ID] = v
	}
	return out, nil
}
