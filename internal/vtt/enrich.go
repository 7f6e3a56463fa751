package vtt

import (
	"strings"
)

const (
	baselinePerWord = 0.15
	shortPause      = 0.1
	sentencePause   = 0.2
)

// EstimateWordTimestamps distributes a cue's span over its words when no
// inline tags exist. Longer words get proportionally more time and
// punctuation adds a pause, on top of a 150ms baseline per word.
func EstimateWordTimestamps(start, end float64, text string) []Word {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) == 1 {
		return []Word{{Text: words[0], Time: start}}
	}

	total := end - start

	weights := make([]float64, len(words))
	pauses := make([]float64, len(words))
	var weightSum, pauseSum float64
	for i, w := range words {
		clean := strings.Trim(w, `.,!?;:'"`)
		weight := float64(len([]rune(clean)))
		if weight < 1 {
			weight = 1
		}
		weights[i] = weight
		weightSum += weight

		switch {
		case strings.HasSuffix(w, ",") || strings.HasSuffix(w, ";"):
			pauses[i] = shortPause
		case strings.HasSuffix(w, ".") || strings.HasSuffix(w, "!") || strings.HasSuffix(w, "?"):
			pauses[i] = sentencePause
		}
		pauseSum += pauses[i]
	}

	remaining := total - baselinePerWord*float64(len(words)) - pauseSum
	if remaining < 0 {
		remaining = 0
	}

	result := make([]Word, 0, len(words))
	current := start
	for i, w := range words {
		result = append(result, Word{Text: w, Time: current})
		duration := baselinePerWord + pauses[i]
		if weightSum > 0 {
			duration += weights[i] / weightSum * remaining
		}
		current += duration
	}
	return result
}

// FormatCueWords renders a word list as the dual VTT payload: a tagged line
// for karaoke-style highlighting plus a plain-text line for fallback. The
// first word stays untagged; subsequent words carry the space inside the
// <c> tag.
func FormatCueWords(words []Word) string {
	if len(words) == 0 {
		return ""
	}

	var tagged strings.Builder
	plain := make([]string, len(words))
	for i, w := range words {
		plain[i] = w.Text
		if i == 0 {
			tagged.WriteString(w.Text)
			continue
		}
		tagged.WriteString("<")
		tagged.WriteString(mustTimestamp(w.Time))
		tagged.WriteString("><c> ")
		tagged.WriteString(w.Text)
		tagged.WriteString("</c>")
	}

	return tagged.String() + "\n" + strings.Join(plain, " ")
}

// EnrichContent adds estimated word-level timestamp tags to every cue in
// the given VTT text that lacks them. Cues that already carry inline tags,
// header blocks, and unparsable blocks pass through untouched.
func EnrichContent(content string) string {
	blocks := splitBlocks(content)
	out := make([]string, 0, len(blocks))

	for _, b := range blocks {
		out = append(out, enrichBlock(b))
	}

	joined := strings.Join(out, "\n\n")
	if !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return joined
}

func enrichBlock(b block) string {
	raw := strings.Join(b.lines, "\n")

	if strings.HasPrefix(b.lines[0], "WEBVTT") ||
		strings.HasPrefix(b.lines[0], "X-TIMESTAMP-MAP") ||
		strings.HasPrefix(b.lines[0], "Kind:") ||
		strings.HasPrefix(b.lines[0], "Language:") {
		return raw
	}

	tsIndex := -1
	var m []string
	for i, line := range b.lines {
		if m = rangeLine.FindStringSubmatch(line); m != nil {
			tsIndex = i
			break
		}
	}
	if tsIndex < 0 {
		return raw
	}

	payload := strings.Join(b.lines[tsIndex+1:], " ")
	if syllableTag.MatchString(payload) {
		return raw
	}

	text := strings.TrimSpace(stripTags(payload))
	if text == "" {
		return raw
	}

	start, err := ToSeconds(m[1])
	if err != nil {
		return raw
	}
	end, err := ToSeconds(m[2])
	if err != nil {
		return raw
	}

	words := EstimateWordTimestamps(start, end, text)
	enriched := append([]string(nil), b.lines[:tsIndex+1]...)
	enriched = append(enriched, FormatCueWords(words))
	return strings.Join(enriched, "\n")
}
