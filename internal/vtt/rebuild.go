package vtt

import (
	"sort"
	"strings"
)

// Rebuild discards the original cue boundaries and regroups the flattened,
// time-ordered word stream into new cues no longer than maxCueDuration.
// Useful when overlapping partial feeds produce inconsistent groupings.
// Word-less cues have no stream to regroup and are carried through as-is.
// The input document is not modified.
func Rebuild(doc *Document, maxCueDuration float64) *Document {
	out := &Document{Header: cloneHeader(doc.Header)}
	if doc.Correction != nil {
		c := *doc.Correction
		out.Correction = &c
	}

	type indexed struct {
		order int
		word  Word
	}
	var stream []indexed
	for _, cue := range doc.Cues {
		for _, w := range cue.Words {
			stream = append(stream, indexed{order: len(stream), word: w})
		}
		if len(cue.Words) == 0 && strings.TrimSpace(cue.Text) != "" {
			copied := cue
			out.Cues = append(out.Cues, copied)
		}
	}

	sort.SliceStable(stream, func(i, j int) bool {
		if stream[i].word.Time != stream[j].word.Time {
			return stream[i].word.Time < stream[j].word.Time
		}
		return stream[i].order < stream[j].order
	})

	var current []Word
	var segStart, segEnd float64

	flush := func() {
		if len(current) == 0 {
			return
		}
		out.Cues = append(out.Cues, cueFromWords(current, segStart, segEnd))
		current = nil
	}

	for _, item := range stream {
		w := item.word
		if len(current) == 0 {
			segStart, segEnd = w.Time, w.Time
			current = []Word{w}
			continue
		}
		if w.Time-segStart > maxCueDuration {
			flush()
			segStart, segEnd = w.Time, w.Time
			current = []Word{w}
		} else {
			current = append(current, w)
			segEnd = w.Time
		}
	}
	flush()

	sort.SliceStable(out.Cues, func(i, j int) bool {
		return out.Cues[i].Start < out.Cues[j].Start
	})
	return out
}

// SplitLongCues partitions any cue longer than maxDuration into consecutive
// sub-cues, splitting only between words. Words sharing an identical
// timestamp stay together. A cue with fewer than two distinct word
// timestamps has no usable split point and is returned whole, even when a
// single word's span exceeds maxDuration. The input document is not
// modified.
func SplitLongCues(doc *Document, maxDuration float64) *Document {
	out := &Document{Header: cloneHeader(doc.Header)}
	if doc.Correction != nil {
		c := *doc.Correction
		out.Correction = &c
	}

	for _, cue := range doc.Cues {
		if cue.Duration() <= maxDuration {
			copied := cue
			copied.Words = append([]Word(nil), cue.Words...)
			out.Cues = append(out.Cues, copied)
			continue
		}
		out.Cues = append(out.Cues, splitCue(cue, maxDuration)...)
	}
	return out
}

type wordGroup struct {
	time  float64
	words []Word
}

func splitCue(cue Cue, maxDuration float64) []Cue {
	words := append([]Word(nil), cue.Words...)
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Time < words[j].Time
	})

	var groups []wordGroup
	for _, w := range words {
		if n := len(groups); n > 0 && groups[n-1].time == w.Time {
			groups[n-1].words = append(groups[n-1].words, w)
			continue
		}
		groups = append(groups, wordGroup{time: w.Time, words: []Word{w}})
	}

	// no word boundary to split at
	if len(groups) <= 1 {
		return []Cue{cue}
	}

	var result []Cue
	var chunk []Word
	chunkStart := cue.Start
	lastEnd := cue.Start

	for i, g := range groups {
		groupEnd := cue.End
		if i < len(groups)-1 {
			groupEnd = groups[i+1].time
		}

		if groupEnd-chunkStart > maxDuration && len(chunk) > 0 {
			result = append(result, cueFromWords(chunk, chunkStart, lastEnd))
			chunk = nil
			chunkStart = g.time
		}

		chunk = append(chunk, g.words...)
		lastEnd = groupEnd
	}

	if len(chunk) > 0 {
		result = append(result, cueFromWords(chunk, chunkStart, cue.End))
	}
	return result
}

func cueFromWords(words []Word, start, end float64) Cue {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return Cue{
		Start: start,
		End:   end,
		Text:  strings.TrimSpace(strings.Join(texts, " ")),
		Words: append([]Word(nil), words...),
	}
}

func cloneHeader(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
