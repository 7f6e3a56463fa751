package vtt

// ComputeOffset derives a uniform timestamp offset from playlist metadata.
// Preference order: media sequence arithmetic, then program date time
// against the stream's nominal start, then no correction at all. Missing
// fields are never an error.
func ComputeOffset(info PlaylistInfo) (float64, Method) {
	if info.MediaSequence != nil && info.SegmentDuration != nil && *info.SegmentDuration > 0 {
		offset := float64(*info.MediaSequence) * *info.SegmentDuration
		if offset < 0 {
			return 0, MethodMediaSequence
		}
		return offset, MethodMediaSequence
	}

	if info.ProgramDateTime != nil && info.StreamStart != nil {
		return info.ProgramDateTime.Sub(*info.StreamStart).Seconds(), MethodProgramDateTime
	}

	return 0, MethodNone
}

// ApplyOffset returns a copy of the document with offset added to every cue
// start, end, and word time, carrying a correction record in the result.
// Timestamps that would go negative are clamped to zero and counted in the
// record rather than dropped.
func ApplyOffset(doc *Document, offset float64, method Method, info PlaylistInfo) *Document {
	out := doc.Clone()
	meta := &CorrectionMetadata{
		Applied:         offset != 0,
		OffsetSeconds:   offset,
		Method:          method,
		MediaSequence:   info.MediaSequence,
		SegmentDuration: info.SegmentDuration,
	}
	out.Correction = meta

	if offset == 0 {
		return out
	}

	shift := func(t float64) float64 {
		t += offset
		if t < 0 {
			meta.NegativeTimestamps++
			return 0
		}
		return t
	}

	for i := range out.Cues {
		cue := &out.Cues[i]
		cue.Start = shift(cue.Start)
		cue.End = shift(cue.End)
		for j := range cue.Words {
			cue.Words[j].Time = shift(cue.Words[j].Time)
		}
	}

	return out
}

// Correct is ComputeOffset followed by ApplyOffset.
func Correct(doc *Document, info PlaylistInfo) *Document {
	offset, method := ComputeOffset(info)
	return ApplyOffset(doc, offset, method, info)
}
