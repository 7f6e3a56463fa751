package vtt

import (
	"strconv"
	"strings"
)

// Merger accumulates cues from successive partial feeds, dropping cues
// whose (start time, text) signature has been seen before. First-seen order
// is preserved across Add calls; the accumulator is never re-sorted, so
// callers needing chronological output must rebuild or sort themselves.
//
// A Merger is a single-writer object: concurrent Add or Serialize calls
// require external synchronization.
type Merger struct {
	cues []Cue
	seen map[string]struct{}
}

func NewMerger() *Merger {
	return &Merger{seen: map[string]struct{}{}}
}

func signature(c Cue) string {
	return mustTimestamp(c.Start) + "||" + c.Text
}

// Add appends each cue whose signature is unseen and returns how many were
// actually added.
func (m *Merger) Add(cues []Cue) int {
	added := 0
	for _, c := range cues {
		sig := signature(c)
		if _, ok := m.seen[sig]; ok {
			continue
		}
		m.seen[sig] = struct{}{}
		copied := c
		copied.Words = append([]Word(nil), c.Words...)
		m.cues = append(m.cues, copied)
		added++
	}
	return added
}

// Cues returns the accumulated cues in first-seen order.
func (m *Merger) Cues() []Cue {
	return append([]Cue(nil), m.cues...)
}

func (m *Merger) Len() int {
	return len(m.cues)
}

func (m *Merger) Reset() {
	m.cues = nil
	m.seen = map[string]struct{}{}
}

// Serialize renders the accumulator back to VTT text: header, numbered cue
// blocks, and for word-bearing cues the dual payload of a tagged line plus
// a plain-text line.
func (m *Merger) Serialize() string {
	return SerializeCues(m.cues)
}

// SerializeCues renders a cue list as VTT text with numbered blocks.
func SerializeCues(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for i, c := range cues {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("\n")
		sb.WriteString(mustTimestamp(c.Start))
		sb.WriteString(" --> ")
		sb.WriteString(mustTimestamp(c.End))
		sb.WriteString("\n")
		if len(c.Words) > 0 {
			sb.WriteString(FormatCueWords(c.Words))
		} else {
			sb.WriteString(c.Text)
		}
		sb.WriteString("\n\n")
	}

	return sb.String()
}
