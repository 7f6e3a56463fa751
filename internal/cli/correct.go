package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anilkumarmeena/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var correctCmd = &cobra.Command{
	Use:   "correct [vtt_file]",
	Short: "Apply a timestamp offset to every cue of a VTT file",
	Long: `Correct the systematic timestamp offset of a live-stream VTT capture.

The offset is derived from an M3U8 playlist file (media sequence times
segment duration, or program date time against --stream-start), or given
directly with --offset. The corrected cues are written back as VTT.

Examples:
  vttkit correct stream.vtt --playlist stream.m3u8
  vttkit correct stream.vtt --offset 6170
  vttkit correct stream.vtt --playlist stream.m3u8 --stream-start 2024-01-15T10:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runCorrect,
}

func init() {
	rootCmd.AddCommand(correctCmd)

	correctCmd.Flags().
		StringP("playlist", "p", "", "M3U8 playlist file to derive the offset from")
	correctCmd.Flags().
		Float64("offset", 0, "Offset in seconds to apply directly")
	correctCmd.Flags().
		String("stream-start", "", "Nominal stream start (RFC 3339) for program-date-time correction")
	correctCmd.Flags().
		Bool("no-clean", false, "Skip cleaning of structurally invalid lines")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	vttPath := args[0]

	playlistPath, _ := cmd.Flags().GetString("playlist")
	directOffset, _ := cmd.Flags().GetFloat64("offset")
	streamStartStr, _ := cmd.Flags().GetString("stream-start")
	noClean, _ := cmd.Flags().GetBool("no-clean")
	outputPath, _ := cmd.Flags().GetString("output")

	if playlistPath == "" && !cmd.Flags().Changed("offset") {
		return fmt.Errorf("either --playlist or --offset is required")
	}
	if outputPath == "" {
		base := strings.TrimSuffix(vttPath, filepath.Ext(vttPath))
		outputPath = base + ".corrected.vtt"
	}

	doc, skipped, err := parseFile(vttPath, !noClean && cfg.CleanContent)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		logger.Warnw("Skipped cue block",
			"line", s.Line,
			"reason", s.Reason,
		)
	}

	var info vtt.PlaylistInfo
	offset := directOffset
	method := vtt.MethodNone
	if playlistPath != "" {
		info, err = loadPlaylistInfo(playlistPath, streamStartStr)
		if err != nil {
			return err
		}
		offset, method = vtt.ComputeOffset(info)
	}

	logger.Infow("Applying timestamp correction",
		"offset_seconds", offset,
		"method", method,
	)

	corrected := vtt.ApplyOffset(doc, offset, method, info)
	if corrected.Correction.NegativeTimestamps > 0 {
		logger.Warnw("Correction produced negative timestamps, clamped to zero",
			"count", corrected.Correction.NegativeTimestamps,
		)
	}

	if err := os.WriteFile(outputPath, []byte(vtt.SerializeCues(corrected.Cues)), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Corrected VTT written: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(corrected.Cues))
	fmt.Printf("  Offset: %.3fs (%s)\n", offset, method)

	return nil
}
