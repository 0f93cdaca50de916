package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/toolpact/toolpact/engine/chunk"
)

func chunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Inspect and merge chunk list documents",
	}
	cmd.AddCommand(chunkShowCmd(), chunkMergeCmd())
	return cmd
}

func chunkShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <chunks.json>",
		Short: "List the chunks and their chunk keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunks, err := chunk.LoadChunks(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range chunks {
				fmt.Fprintf(out, "%s\t%s\n", c.ID, strings.Join(c.ChunkKeys(), " "))
			}
			return nil
		},
	}
}

func chunkMergeCmd() *cobra.Command {
	var chunkKey string

	cmd := &cobra.Command{
		Use:   "merge <chunks.json>",
		Short: "Print the values gathered under one chunk key, in document order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunks, err := chunk.LoadChunks(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			values, err := chunk.MergeForGather(chunks, chunkKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range values {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chunkKey, "chunk-key", "", "chunk key to gather, e.g. $chunk.fasta_id")
	_ = cmd.MarkFlagRequired("chunk-key")
	return cmd
}
