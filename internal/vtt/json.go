package vtt

import (
	"encoding/json"
)

type wordJSON struct {
	Word string `json:"word"`
	Time string `json:"time"`
}

type cueJSON struct {
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Text      string     `json:"text"`
	Words     []wordJSON `json:"words"`
}

type correctionJSON struct {
	Applied            bool     `json:"applied"`
	OffsetSeconds      float64  `json:"offset_seconds"`
	CorrectionMethod   Method   `json:"correction_method"`
	MediaSequence      *int64   `json:"media_sequence"`
	SegmentDuration    *float64 `json:"segment_duration"`
	NegativeTimestamps int      `json:"negative_timestamps,omitempty"`
}

type segmentsJSON struct {
	Header map[string]any `json:"header"`
	Cues   []cueJSON      `json:"cues"`
}

// EncodeSegments marshals a document into the segments.json structure:
// textual timestamps throughout and the correction record, if any, under
// header["timestamp_correction"].
func EncodeSegments(doc *Document) ([]byte, error) {
	header := make(map[string]any, len(doc.Header)+1)
	for k, v := range doc.Header {
		header[k] = v
	}
	if c := doc.Correction; c != nil {
		header["timestamp_correction"] = correctionJSON{
			Applied:            c.Applied,
			OffsetSeconds:      c.OffsetSeconds,
			CorrectionMethod:   c.Method,
			MediaSequence:      c.MediaSequence,
			SegmentDuration:    c.SegmentDuration,
			NegativeTimestamps: c.NegativeTimestamps,
		}
	}

	out := segmentsJSON{Header: header, Cues: make([]cueJSON, 0, len(doc.Cues))}
	for _, cue := range doc.Cues {
		start, err := ToTimestamp(cue.Start)
		if err != nil {
			return nil, err
		}
		end, err := ToTimestamp(cue.End)
		if err != nil {
			return nil, err
		}
		cj := cueJSON{
			StartTime: start,
			EndTime:   end,
			Text:      cue.Text,
			Words:     make([]wordJSON, 0, len(cue.Words)),
		}
		for _, w := range cue.Words {
			t, err := ToTimestamp(w.Time)
			if err != nil {
				return nil, err
			}
			cj.Words = append(cj.Words, wordJSON{Word: w.Text, Time: t})
		}
		out.Cues = append(out.Cues, cj)
	}

	return json.MarshalIndent(out, "", "  ")
}
