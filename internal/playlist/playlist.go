// Package playlist extracts timing metadata from M3U8 playlist text for
// live-stream timestamp correction. It never fetches anything: the caller
// supplies the playlist body.
package playlist

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/anilkumarmeena/vttkit/internal/vtt"
)

const (
	tagProgramDateTime = "#EXT-X-PROGRAM-DATE-TIME:"
	tagMediaSequence   = "#EXT-X-MEDIA-SEQUENCE:"
	tagExtInf          = "#EXTINF:"
)

// Info holds the timing fields of an M3U8 playlist. Absent fields are nil;
// SegmentDuration is the average of all EXTINF durations when any exist.
type Info struct {
	MediaSequence   *int64
	SegmentDuration *float64
	ProgramDateTime *time.Time
}

// ParseInfo scans playlist text for PROGRAM-DATE-TIME, MEDIA-SEQUENCE and
// EXTINF tags. Unparsable tag values are ignored rather than fatal.
func ParseInfo(content string) Info {
	var info Info
	var durations []float64

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, tagProgramDateTime):
			value := strings.TrimSpace(strings.TrimPrefix(line, tagProgramDateTime))
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				info.ProgramDateTime = &t
			}
		case strings.HasPrefix(line, tagMediaSequence):
			value := strings.TrimSpace(strings.TrimPrefix(line, tagMediaSequence))
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				info.MediaSequence = &n
			}
		case strings.HasPrefix(line, tagExtInf):
			// #EXTINF:5.005, — duration up to the first comma
			value := strings.TrimPrefix(line, tagExtInf)
			value, _, _ = strings.Cut(value, ",")
			if d, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				durations = append(durations, d)
			}
		}
	}

	if len(durations) > 0 {
		sum := 0.0
		for _, d := range durations {
			sum += d
		}
		avg := sum / float64(len(durations))
		info.SegmentDuration = &avg
	}

	return info
}

// PlaylistInfo converts to the corrector's input shape. streamStart is the
// stream's nominal start for the program-date-time method; pass the zero
// time when unknown.
func (i Info) PlaylistInfo(streamStart time.Time) vtt.PlaylistInfo {
	out := vtt.PlaylistInfo{
		MediaSequence:   i.MediaSequence,
		SegmentDuration: i.SegmentDuration,
		ProgramDateTime: i.ProgramDateTime,
	}
	if !streamStart.IsZero() {
		out.StreamStart = &streamStart
	}
	return out
}
