package vtt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// inline syllable tag: <HH:MM:SS.mmm><c>text</c>
	syllableTag = regexp.MustCompile(`<(\d{2,}:\d{2}:\d{2}\.\d{3})><c>([^<]*)</c>`)
	// bare inline timestamp tag, used when stripping payload down to plain text
	bareTag   = regexp.MustCompile(`<\d{2,}:\d{2}:\d{2}\.\d{3}>`)
	classSpan = regexp.MustCompile(`<c>(.*?)</c>`)
)

// live producers emit cue-relative inline tags; a first tag this far past
// the cue duration means the tags are absolute and get anchored instead
const relativeTagSlack = 0.05

type block struct {
	line  int
	lines []string
}

// Parse tokenizes VTT text into a Document of cues with word-level
// timestamps. Malformed cue blocks are skipped and reported, never fatal:
// an empty document with a non-empty skip list is a valid outcome.
func Parse(content string) (*Document, []SkippedBlock) {
	doc := &Document{Header: map[string]string{}}
	var skipped []SkippedBlock

	blocks := splitBlocks(content)
	if len(blocks) == 0 {
		return doc, nil
	}

	cueBlocks := blocks
	if strings.HasPrefix(blocks[0].lines[0], "WEBVTT") {
		for _, line := range blocks[0].lines[1:] {
			if key, value, ok := strings.Cut(line, ": "); ok {
				doc.Header[key] = value
			}
		}
		cueBlocks = blocks[1:]
	}

	for _, b := range cueBlocks {
		cue, skip := parseBlock(b)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		doc.Cues = append(doc.Cues, cue)
	}

	sort.SliceStable(doc.Cues, func(i, j int) bool {
		return doc.Cues[i].Start < doc.Cues[j].Start
	})

	return doc, skipped
}

// splitBlocks splits text into blank-line separated blocks, keeping the
// 1-based line number each block starts at.
func splitBlocks(content string) []block {
	lines := strings.Split(content, "\n")
	var blocks []block
	var current []string
	start := 0

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, block{line: start, lines: current})
			current = nil
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line == "" {
			flush()
			continue
		}
		if len(current) == 0 {
			start = i + 1
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func parseBlock(b block) (Cue, *SkippedBlock) {
	lines := b.lines

	// the timestamp line is first, or second when preceded by an identifier
	tsIndex := 0
	m := rangeLine.FindStringSubmatch(lines[0])
	if m == nil && len(lines) > 1 {
		tsIndex = 1
		m = rangeLine.FindStringSubmatch(lines[1])
	}
	if m == nil {
		return Cue{}, &SkippedBlock{
			Line:    b.line,
			Reason:  "no parsable timestamp line",
			Snippet: lines[0],
		}
	}

	start, err := ToSeconds(m[1])
	if err != nil {
		return Cue{}, &SkippedBlock{
			Line:    b.line + tsIndex,
			Reason:  fmt.Sprintf("bad start time: %v", err),
			Snippet: lines[tsIndex],
		}
	}
	end, err := ToSeconds(m[2])
	if err != nil {
		return Cue{}, &SkippedBlock{
			Line:    b.line + tsIndex,
			Reason:  fmt.Sprintf("bad end time: %v", err),
			Snippet: lines[tsIndex],
		}
	}
	if end < start {
		return Cue{}, &SkippedBlock{
			Line:    b.line + tsIndex,
			Reason:  "cue end before start",
			Snippet: lines[tsIndex],
		}
	}

	payload := lines[tsIndex+1:]
	if len(payload) == 0 {
		return Cue{}, &SkippedBlock{
			Line:    b.line + tsIndex,
			Reason:  "cue has no payload",
			Snippet: lines[tsIndex],
		}
	}

	text := strings.Join(payload, " ")
	cue := Cue{
		Start: start,
		End:   end,
		Text:  stripTags(text),
		Words: extractWords(text, start, end),
	}
	return cue, nil
}

func stripTags(text string) string {
	text = bareTag.ReplaceAllString(text, "")
	return classSpan.ReplaceAllString(text, "$1")
}

// wordBuilder groups timestamped syllables into words; a word's time is the
// midpoint of its first and last anchor, clamped to the cue range.
type wordBuilder struct {
	cueStart  float64
	cueEnd    float64
	syllables []Word
	words     []Word
}

func (wb *wordBuilder) anchor(time float64, text string) {
	wb.syllables = append(wb.syllables, Word{Text: text, Time: time})
}

func (wb *wordBuilder) finalize() {
	if len(wb.syllables) == 0 {
		return
	}
	var sb strings.Builder
	for _, s := range wb.syllables {
		sb.WriteString(s.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text != "" {
		t := wb.syllables[0].Time
		if n := len(wb.syllables); n > 1 {
			t = (wb.syllables[0].Time + wb.syllables[n-1].Time) / 2
		}
		wb.words = append(wb.words, Word{Text: text, Time: clamp(t, wb.cueStart, wb.cueEnd)})
	}
	wb.syllables = nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// extractWords pulls word-level timestamps out of inline syllable tags.
// A tag payload with a leading space starts a new word; one without joins
// the current word. Untagged cues yield no words.
func extractWords(text string, cueStart, cueEnd float64) []Word {
	matches := syllableTag.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	wb := &wordBuilder{cueStart: cueStart, cueEnd: cueEnd}

	firstTag := text[matches[0][2]:matches[0][3]]
	firstTagSeconds, err := ToSeconds(firstTag)
	if err != nil {
		return nil
	}

	// re-base absolute tags so the first tag lands on the cue start;
	// in-range tags are taken as cue-relative
	base := cueStart
	if firstTagSeconds > (cueEnd-cueStart)+relativeTagSlack {
		base = cueStart - firstTagSeconds
	}

	// untagged prefix: whole tokens become words at cue start, a trailing
	// fragment glued to the first tag joins that tag's word
	prefix := strings.TrimRight(strings.ReplaceAll(text[:matches[0][0]], "\n", " "), " ")
	if prefix != "" {
		tokens := strings.Fields(prefix)
		firstTagText := text[matches[0][4]:matches[0][5]]
		if strings.HasPrefix(firstTagText, " ") {
			for _, tok := range tokens {
				wb.words = append(wb.words, Word{Text: tok, Time: cueStart})
			}
		} else if len(tokens) > 0 {
			for _, tok := range tokens[:len(tokens)-1] {
				wb.words = append(wb.words, Word{Text: tok, Time: cueStart})
			}
			wb.anchor(cueStart, tokens[len(tokens)-1])
		}
	}

	for _, m := range matches {
		tag := text[m[2]:m[3]]
		tagSeconds, err := ToSeconds(tag)
		if err != nil {
			continue
		}
		resolved := base + tagSeconds
		chunk := text[m[4]:m[5]]

		if strings.HasPrefix(chunk, " ") {
			wb.finalize()
			chunk = strings.TrimLeft(chunk, " ")
		}
		if chunk != "" {
			wb.anchor(resolved, chunk)
		}
		if strings.HasSuffix(text[m[4]:m[5]], " ") {
			wb.finalize()
		}
	}
	wb.finalize()

	return wb.words
}
