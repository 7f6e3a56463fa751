package vtt

import (
	"regexp"
	"strings"
)

var (
	// timestamp-range line, optional cue settings after the range
	rangeLine = regexp.MustCompile(`^(\d{2,}:\d{2}:\d{2}\.\d{3}) --> (\d{2,}:\d{2}:\d{2}\.\d{3})`)
	// payload line carrying inline word timestamps
	taggedLine = regexp.MustCompile(`<\d{2,}:\d{2}:\d{2}\.\d{3}>`)
)

// Clean removes structurally invalid lines from raw VTT text: empty cue
// blocks, consecutive timestamp lines with no payload between them, and
// stray metadata outside cue blocks. Payload lines inside a cue block are
// kept as-is, tagged or not; rejection of anything ambiguous is left to the
// parser. The result is re-headered valid VTT text.
func Clean(content string) string {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	// first pass: keep timestamp lines and cue payload
	var kept []string
	inBlock := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		switch {
		case line == "":
			inBlock = false
		case rangeLine.MatchString(line):
			kept = append(kept, line)
			inBlock = true
		case strings.HasPrefix(line, "WEBVTT"):
			inBlock = false
		case inBlock:
			kept = append(kept, line)
		case taggedLine.MatchString(line):
			// tagged payload separated from its timestamp line by
			// a stray blank; keep it rather than guess
			kept = append(kept, line)
		}
	}

	// second pass: drop timestamp lines with no payload before the next one
	var blocks []string
	for i := 0; i < len(kept); {
		if !rangeLine.MatchString(kept[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(kept) && !rangeLine.MatchString(kept[j]) {
			j++
		}
		if j > i+1 {
			blocks = append(blocks, strings.Join(kept[i:j], "\n"))
		}
		i = j
	}

	if len(blocks) == 0 {
		return "WEBVTT\n"
	}
	return "WEBVTT\n\n" + strings.Join(blocks, "\n\n") + "\n"
}
