package vtt

import (
	"errors"
	"time"
)

// single word with its timestamp in seconds
type Word struct {
	Text string
	Time float64
}

// subtitle cue with word-level timestamps
type Cue struct {
	Start float64
	End   float64
	Text  string
	Words []Word
}

// complete parsed VTT document
type Document struct {
	Header     map[string]string
	Correction *CorrectionMetadata
	Cues       []Cue
}

// how a timestamp offset was derived
type Method string

const (
	MethodMediaSequence   Method = "media_sequence"
	MethodProgramDateTime Method = "program_date_time"
	MethodNone            Method = "none"
)

// record of a timestamp correction, attached to a document header
type CorrectionMetadata struct {
	Applied         bool
	OffsetSeconds   float64
	Method          Method
	MediaSequence   *int64
	SegmentDuration *float64

	// number of timestamps that went negative and were clamped to zero
	NegativeTimestamps int
}

// playlist metadata used to derive a timestamp offset; absent fields are nil
type PlaylistInfo struct {
	MediaSequence   *int64
	SegmentDuration *float64
	ProgramDateTime *time.Time
	StreamStart     *time.Time
}

// diagnostic for a cue block the parser could not use
type SkippedBlock struct {
	Line    int
	Reason  string
	Snippet string
}

var (
	ErrMalformedTimestamp    = errors.New("malformed timestamp")
	ErrInvalidTimestampValue = errors.New("invalid timestamp value")
)

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Header: make(map[string]string, len(d.Header)),
		Cues:   make([]Cue, len(d.Cues)),
	}
	for k, v := range d.Header {
		out.Header[k] = v
	}
	if d.Correction != nil {
		c := *d.Correction
		out.Correction = &c
	}
	for i, cue := range d.Cues {
		copied := cue
		copied.Words = append([]Word(nil), cue.Words...)
		out.Cues[i] = copied
	}
	return out
}

// Duration returns the cue span in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}
