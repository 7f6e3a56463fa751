package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const taggedVTT = `WEBVTT

00:00:00.000 --> 00:00:02.000
hello<00:00:01.000><c> world</c>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("vttkit %s failed: %v", strings.Join(args, " "), err)
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	vttPath := writeFile(t, dir, "stream.vtt", taggedVTT)
	outPath := filepath.Join(dir, "segments.json")

	runCommand(t, "parse", vttPath, "-o", outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	var decoded struct {
		Cues []struct {
			StartTime string `json:"start_time"`
			Text      string `json:"text"`
			Words     []struct {
				Word string `json:"word"`
			} `json:"words"`
		} `json:"cues"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(decoded.Cues))
	}
	cue := decoded.Cues[0]
	if cue.StartTime != "00:00:00.000" {
		t.Errorf("start_time = %q, want 00:00:00.000", cue.StartTime)
	}
	if cue.Text != "hello world" {
		t.Errorf("text = %q, want %q", cue.Text, "hello world")
	}
	if len(cue.Words) != 2 || cue.Words[1].Word != "world" {
		t.Errorf("words = %+v", cue.Words)
	}
}

func TestParseCommandWithPlaylist(t *testing.T) {
	dir := t.TempDir()
	vttPath := writeFile(t, dir, "stream.vtt", taggedVTT)
	playlistPath := writeFile(t, dir, "stream.m3u8", `#EXTM3U
#EXT-X-MEDIA-SEQUENCE:2
#EXTINF:3.000,
seg2.ts
#EXTINF:3.000,
seg3.ts
`)
	outPath := filepath.Join(dir, "segments.json")

	runCommand(t, "parse", vttPath, "-o", outPath, "--playlist", playlistPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	var decoded struct {
		Header struct {
			Correction struct {
				Applied       bool    `json:"applied"`
				OffsetSeconds float64 `json:"offset_seconds"`
			} `json:"timestamp_correction"`
		} `json:"header"`
		Cues []struct {
			StartTime string `json:"start_time"`
		} `json:"cues"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if !decoded.Header.Correction.Applied || decoded.Header.Correction.OffsetSeconds != 6.0 {
		t.Errorf("correction block = %+v", decoded.Header.Correction)
	}
	if len(decoded.Cues) != 1 || decoded.Cues[0].StartTime != "00:00:06.000" {
		t.Errorf("corrected cues = %+v", decoded.Cues)
	}
}

func TestCorrectCommandDirectOffset(t *testing.T) {
	dir := t.TempDir()
	vttPath := writeFile(t, dir, "stream.vtt", taggedVTT)
	outPath := filepath.Join(dir, "out.vtt")

	runCommand(t, "correct", vttPath, "-o", outPath, "--offset", "10")

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	got := string(data)
	if !strings.HasPrefix(got, "WEBVTT\n") {
		t.Errorf("output missing WEBVTT header: %q", got)
	}
	if !strings.Contains(got, "00:00:10.000 --> 00:00:12.000") {
		t.Errorf("cue range not shifted: %q", got)
	}
	if !strings.Contains(got, "<00:00:11.000><c> world</c>") {
		t.Errorf("word tags not shifted: %q", got)
	}
}

func TestMergeCommandDeduplicates(t *testing.T) {
	dir := t.TempDir()
	partA := writeFile(t, dir, "part1.vtt", `WEBVTT

00:00:00.000 --> 00:00:02.000
first cue

00:00:02.000 --> 00:00:04.000
second cue
`)
	partB := writeFile(t, dir, "part2.vtt", `WEBVTT

00:00:02.000 --> 00:00:04.000
second cue

00:00:04.000 --> 00:00:06.000
third cue
`)
	outPath := filepath.Join(dir, "merged.vtt")

	runCommand(t, "merge", partA, partB, "-o", outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	got := string(data)
	if n := strings.Count(got, " --> "); n != 3 {
		t.Errorf("expected 3 merged cues, got %d:\n%s", n, got)
	}
	if strings.Count(got, "second cue") != 1 {
		t.Errorf("overlapping cue duplicated:\n%s", got)
	}
}
