package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/toolpact/toolpact/engine/chunk"
	"github.com/toolpact/toolpact/engine/contract"
	"github.com/toolpact/toolpact/engine/filetype"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Validate a tool contract, resolved contract, or chunk list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			path := args[0]
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return err
			}
			switch kind := contract.ProbeKind(data); kind {
			case contract.KindToolContract:
				tc, err := contract.ParseToolContract(data, path)
				if err != nil {
					return err
				}
				if err := tc.Validate(filetype.DefaultRegistry()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid tool contract %q (%d inputs, %d outputs)\n",
					tc.ID, len(tc.InputTypes), len(tc.OutputTypes))
			case contract.KindResolvedToolContract:
				rtc, err := contract.ParseResolvedToolContract(data, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid resolved tool contract %q (nproc=%d)\n",
					rtc.ID, rtc.Nproc)
			case contract.KindChunkList:
				chunks, err := chunk.LoadChunks(fs, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid chunk list (%d chunks)\n", len(chunks))
			default:
				return fmt.Errorf("%s: unrecognized document kind", path)
			}
			return nil
		},
	}
}
