package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anilkumarmeena/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [vtt_file]",
	Short: "Remove structurally invalid lines from a VTT file",
	Long: `Clean a VTT file by removing empty cue blocks, consecutive timestamp
lines without payload, and stray metadata, then re-header the result as
valid VTT.

Examples:
  vttkit clean noisy.vtt
  vttkit clean noisy.vtt -o clean.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	vttPath := args[0]

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(vttPath, filepath.Ext(vttPath))
		outputPath = base + ".clean.vtt"
	}

	data, err := os.ReadFile(vttPath)
	if err != nil {
		return fmt.Errorf("failed to read VTT file: %w", err)
	}

	cleaned := vtt.Clean(string(data))

	if err := os.WriteFile(outputPath, []byte(cleaned), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Cleaned VTT written: %s\n", absOutput)

	return nil
}
