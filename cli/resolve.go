package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/toolpact/toolpact/engine/contract"
	"github.com/toolpact/toolpact/engine/filetype"
	"github.com/toolpact/toolpact/engine/option"
	"github.com/toolpact/toolpact/engine/preset"
	"github.com/toolpact/toolpact/engine/resolver"
	"github.com/toolpact/toolpact/pkg/config"
	"github.com/toolpact/toolpact/pkg/logger"
)

func resolveCmd() *cobra.Command {
	var (
		inputs     []string
		outputs    []string
		outputPath string
		outputDir  string
		tmpDir     string
		logDir     string
		maxNproc   int
		maxNchunks int
		nchunks    int
		chunkList  string
		presetPath string
		taskOpts   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "resolve <tool-contract.json>",
		Short: "Resolve a tool contract into an executable document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyConfigDefaults(cmd, cfg, &outputDir, &tmpDir, &logDir, &maxNproc, &maxNchunks)

			fs := afero.NewOsFs()
			tc, err := contract.LoadToolContract(fs, args[0])
			if err != nil {
				return err
			}
			if err := tc.Validate(filetype.DefaultRegistry()); err != nil {
				return err
			}

			candidates, err := buildTaskOptions(fs, tc.Options, taskOpts, presetPath)
			if err != nil {
				return err
			}

			opts := resolver.Options{
				InputFiles:  inputs,
				OutputDir:   outputDir,
				TmpDir:      tmpDir,
				LogDir:      logDir,
				MaxNproc:    maxNproc,
				MaxNchunks:  maxNchunks,
				TaskOptions: candidates,
			}
			if len(outputs) > 0 {
				opts.OutputFiles = outputs
			}

			var rtc *contract.ResolvedToolContract
			switch {
			case tc.IsScatter():
				rtc, err = resolver.ResolveScatter(tc, opts, nchunks)
			case tc.IsGather():
				if chunkList == "" {
					return fmt.Errorf("gather contract %q requires --chunk-list", tc.ID)
				}
				rtc, err = resolver.ResolveGather(fs, tc, chunkList, opts)
			default:
				rtc, err = resolver.Resolve(tc, opts)
			}
			if err != nil {
				return err
			}

			if err := contract.WriteResolvedToolContract(fs, rtc, outputPath); err != nil {
				return err
			}
			logger.Info("resolved tool contract", "id", rtc.ID, "path", outputPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&inputs, "input", "i", nil, "input file, one per declared slot, in order")
	flags.StringArrayVar(&outputs, "output-file", nil, "override output path, one per declared slot, in order")
	flags.StringVarP(&outputPath, "output", "o", "resolved-tool-contract.json", "where to write the resolved contract")
	flags.StringVar(&outputDir, "output-dir", "", "directory for synthesized output paths")
	flags.StringVar(&tmpDir, "tmp-dir", "", "directory for temporary resources")
	flags.StringVar(&logDir, "log-dir", "", "directory for log file resources")
	flags.IntVar(&maxNproc, "max-nproc", 0, "maximum processors granted to the run")
	flags.IntVar(&maxNchunks, "max-nchunks", 0, "maximum chunk count granted to the run")
	flags.IntVar(&nchunks, "nchunks", 0, "requested chunk count for scatter contracts (0 = ceiling)")
	flags.StringVar(&chunkList, "chunk-list", "", "chunk list document for gather contracts")
	flags.StringVar(&presetPath, "preset", "", "preset document layered under the task options")
	flags.StringToStringVar(&taskOpts, "option", nil, "task option as id=value, repeatable")

	return cmd
}

// applyConfigDefaults fills any flag the caller left unset from the
// environment-backed configuration.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, outputDir, tmpDir, logDir *string, maxNproc, maxNchunks *int) {
	flags := cmd.Flags()
	if !flags.Changed("output-dir") {
		*outputDir = cfg.OutputDir
	}
	if !flags.Changed("tmp-dir") {
		*tmpDir = cfg.TmpDir
	}
	if !flags.Changed("log-dir") {
		*logDir = cfg.LogDir
	}
	if !flags.Changed("max-nproc") {
		*maxNproc = cfg.MaxNproc
	}
	if !flags.Changed("max-nchunks") {
		*maxNchunks = cfg.MaxNchunks
	}
}

// buildTaskOptions turns id=value flags into typed candidates, layering an
// optional preset underneath. Flag values arrive as strings; each is parsed
// against the declared option type so resolution sees properly typed values.
func buildTaskOptions(fs afero.Fs, schemas option.SchemaSet, raw map[string]string, presetPath string) (map[string]any, error) {
	candidates := make(map[string]any, len(raw))
	for id, s := range raw {
		schema, ok := schemas.ByID(id)
		if !ok {
			// let resolution reject it with the proper error
			candidates[id] = s
			continue
		}
		v, err := parseOptionString(schema.Type, s)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", id, err)
		}
		candidates[id] = v
	}
	if presetPath == "" {
		return candidates, nil
	}
	p, err := preset.Load(fs, presetPath)
	if err != nil {
		return nil, err
	}
	return p.Apply(candidates)
}
