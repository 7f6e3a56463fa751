package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anilkumarmeena/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [vtt_file]",
	Short: "Add estimated word-level timestamps to cues that lack them",
	Long: `Enrich a VTT file by estimating word-level timestamps for cues without
inline <timestamp><c>...</c> tags. Time is distributed across words by word
length, with extra pauses after punctuation. Cues that already carry inline
tags are left untouched.

Examples:
  vttkit enrich plain.vtt
  vttkit enrich plain.vtt -o enriched.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	vttPath := args[0]

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(vttPath, filepath.Ext(vttPath))
		outputPath = base + ".enriched.vtt"
	}

	data, err := os.ReadFile(vttPath)
	if err != nil {
		return fmt.Errorf("failed to read VTT file: %w", err)
	}

	logger.Infow("Enriching VTT file",
		"input", vttPath,
		"output", outputPath,
	)

	enriched := vtt.EnrichContent(string(data))

	if err := os.WriteFile(outputPath, []byte(enriched), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Enriched VTT written: %s\n", absOutput)

	return nil
}
