package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anilkumarmeena/vttkit/internal/playlist"
	"github.com/anilkumarmeena/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [vtt_file]",
	Short: "Parse a VTT file into word-timestamped segments.json",
	Long: `Parse a VTT file into a structured segments.json document with
word-level timestamps extracted from inline <timestamp><c>...</c> tags.

For live-stream captures, pass the captured M3U8 playlist with --playlist to
correct the systematic timestamp offset derived from the playlist's media
sequence or program date time.

Examples:
  vttkit parse stream.vtt
  vttkit parse stream.vtt -o out.json --max-cue-duration 3
  vttkit parse stream.vtt --playlist stream.m3u8
  vttkit parse stream.vtt --rebuild=false --no-clean`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().
		Float64P("max-cue-duration", "d", 0, "Maximum cue duration in seconds (0 = config default)")
	parseCmd.Flags().
		Bool("rebuild", true, "Rebuild cue boundaries from the word stream")
	parseCmd.Flags().
		Bool("no-clean", false, "Skip cleaning of structurally invalid lines")
	parseCmd.Flags().
		StringP("playlist", "p", "", "M3U8 playlist file for timestamp correction")
	parseCmd.Flags().
		String("stream-start", "", "Nominal stream start (RFC 3339) for program-date-time correction")
}

func runParse(cmd *cobra.Command, args []string) error {
	vttPath := args[0]

	maxDuration, _ := cmd.Flags().GetFloat64("max-cue-duration")
	rebuild, _ := cmd.Flags().GetBool("rebuild")
	noClean, _ := cmd.Flags().GetBool("no-clean")
	playlistPath, _ := cmd.Flags().GetString("playlist")
	streamStartStr, _ := cmd.Flags().GetString("stream-start")
	outputPath, _ := cmd.Flags().GetString("output")

	if maxDuration <= 0 {
		maxDuration = cfg.MaxCueDuration
	}
	if !cmd.Flags().Changed("rebuild") {
		rebuild = cfg.RebuildCues
	}
	clean := !noClean && cfg.CleanContent
	if outputPath == "" {
		outputPath = "segments.json"
	}

	logger.Infow("Parsing VTT file",
		"input", vttPath,
		"output", outputPath,
		"max_cue_duration", maxDuration,
		"rebuild", rebuild,
		"clean", clean,
	)

	doc, skipped, err := parseFile(vttPath, clean)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		logger.Warnw("Skipped cue block",
			"line", s.Line,
			"reason", s.Reason,
			"snippet", s.Snippet,
		)
	}

	if rebuild {
		doc = vtt.Rebuild(doc, maxDuration)
	} else {
		doc = vtt.SplitLongCues(doc, maxDuration)
	}

	if playlistPath != "" {
		info, err := loadPlaylistInfo(playlistPath, streamStartStr)
		if err != nil {
			return err
		}
		offset, method := vtt.ComputeOffset(info)
		logger.Infow("Applying timestamp correction",
			"offset_seconds", offset,
			"method", method,
		)
		doc = vtt.ApplyOffset(doc, offset, method, info)
		if doc.Correction.NegativeTimestamps > 0 {
			logger.Warnw("Correction produced negative timestamps, clamped to zero",
				"count", doc.Correction.NegativeTimestamps,
			)
		}
	}

	data, err := vtt.EncodeSegments(doc)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Segments written: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(doc.Cues))
	if len(skipped) > 0 {
		fmt.Printf("  Skipped blocks: %d\n", len(skipped))
	}

	return nil
}

func parseFile(path string, clean bool) (*vtt.Document, []vtt.SkippedBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read VTT file: %w", err)
	}

	content := string(data)
	if clean {
		content = vtt.Clean(content)
	}

	doc, skipped := vtt.Parse(content)
	return doc, skipped, nil
}

func loadPlaylistInfo(path, streamStart string) (vtt.PlaylistInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vtt.PlaylistInfo{}, fmt.Errorf("failed to read playlist file: %w", err)
	}

	info := playlist.ParseInfo(string(data))
	if info.SegmentDuration == nil {
		d := cfg.SegmentDuration
		info.SegmentDuration = &d
	}

	var start time.Time
	if streamStart != "" {
		start, err = time.Parse(time.RFC3339, streamStart)
		if err != nil {
			return vtt.PlaylistInfo{}, fmt.Errorf("invalid --stream-start value: %w", err)
		}
	}

	return info.PlaylistInfo(start), nil
}
