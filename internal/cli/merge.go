package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anilkumarmeena/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [vtt_file...]",
	Short: "Merge partial VTT downloads into one deduplicated file",
	Long: `Merge cues from multiple VTT files into a single file, dropping cues
already seen in an earlier file. Designed for live streams downloaded
incrementally, where successive partial files overlap.

Cues keep their first-seen order; they are not re-sorted by timestamp.

Examples:
  vttkit merge part1.vtt part2.vtt part3.vtt
  vttkit merge parts/*.vtt -o full.vtt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().
		Bool("no-clean", false, "Skip cleaning of structurally invalid lines")
}

func runMerge(cmd *cobra.Command, args []string) error {
	noClean, _ := cmd.Flags().GetBool("no-clean")
	outputPath, _ := cmd.Flags().GetString("output")

	clean := !noClean && cfg.CleanContent
	if outputPath == "" {
		outputPath = "merged.vtt"
	}

	merger := vtt.NewMerger()

	for _, path := range args {
		doc, skipped, err := parseFile(path, clean)
		if err != nil {
			return err
		}
		for _, s := range skipped {
			logger.Warnw("Skipped cue block",
				"file", path,
				"line", s.Line,
				"reason", s.Reason,
			)
		}

		added := merger.Add(doc.Cues)
		logger.Infow("Merged file",
			"file", path,
			"cues", len(doc.Cues),
			"added", added,
		)
	}

	if err := os.WriteFile(outputPath, []byte(merger.Serialize()), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Merged VTT written: %s\n", absOutput)
	fmt.Printf("  Files: %d\n", len(args))
	fmt.Printf("  Cues: %d\n", merger.Len())

	return nil
}
