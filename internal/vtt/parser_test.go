package vtt

import (
	"math"
	"strings"
	"testing"
)

func TestParsePlainCue(t *testing.T) {
	// a cue without inline tags carries zero words
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nhello world\n"

	doc, skipped := Parse(content)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}

	cue := doc.Cues[0]
	if cue.Start != 1 || cue.End != 3 {
		t.Errorf("cue range = [%v, %v], want [1, 3]", cue.Start, cue.End)
	}
	if cue.Text != "hello world" {
		t.Errorf("cue text = %q, want %q", cue.Text, "hello world")
	}
	if len(cue.Words) != 0 {
		t.Errorf("expected zero words, got %d", len(cue.Words))
	}
}

func TestParseHeader(t *testing.T) {
	content := "WEBVTT\nKind: captions\nLanguage: en\n\n00:00:01.000 --> 00:00:02.000\nhi\n"

	doc, _ := Parse(content)
	if doc.Header["Kind"] != "captions" {
		t.Errorf("header Kind = %q, want captions", doc.Header["Kind"])
	}
	if doc.Header["Language"] != "en" {
		t.Errorf("header Language = %q, want en", doc.Header["Language"])
	}
}

func TestParseWordExtraction(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:04.000\n" +
		"Hello<00:00:01.000><c> wor</c><00:00:01.500><c>ld</c><00:00:02.000><c> again</c>\n"

	doc, skipped := Parse(content)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}

	cue := doc.Cues[0]
	if cue.Text != "Hello world again" {
		t.Errorf("cue text = %q, want %q", cue.Text, "Hello world again")
	}

	want := []Word{
		{Text: "Hello", Time: 0},
		{Text: "world", Time: 1.25}, // midpoint of its two anchors
		{Text: "again", Time: 2},
	}
	if len(cue.Words) != len(want) {
		t.Fatalf("expected %d words, got %d: %+v", len(want), len(cue.Words), cue.Words)
	}
	for i, w := range want {
		if cue.Words[i].Text != w.Text {
			t.Errorf("word %d text = %q, want %q", i, cue.Words[i].Text, w.Text)
		}
		if math.Abs(cue.Words[i].Time-w.Time) > 1e-9 {
			t.Errorf("word %d time = %v, want %v", i, cue.Words[i].Time, w.Time)
		}
	}
}

func TestParsePrefixJoinsFirstSyllable(t *testing.T) {
	// no leading space in the first tag: the prefix fragment continues
	// into the tagged syllable
	content := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:02.000\n" +
		"one two th<00:00:01.000><c>ree</c>\n"

	doc, _ := Parse(content)
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}

	words := doc.Cues[0].Words
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d: %+v", len(words), words)
	}
	if words[0].Text != "one" || words[0].Time != 0 {
		t.Errorf("word 0 = %+v, want one@0", words[0])
	}
	if words[1].Text != "two" || words[1].Time != 0 {
		t.Errorf("word 1 = %+v, want two@0", words[1])
	}
	if words[2].Text != "three" {
		t.Errorf("word 2 text = %q, want three", words[2].Text)
	}
	// midpoint of the cue-start anchor and the 1.0s anchor
	if math.Abs(words[2].Time-0.5) > 1e-9 {
		t.Errorf("word 2 time = %v, want 0.5", words[2].Time)
	}
}

func TestParseAbsoluteTagsAnchoredToCueStart(t *testing.T) {
	// a first tag far past the cue duration means absolute tags; they
	// are re-based so the first one lands on the cue start
	content := "WEBVTT\n\n" +
		"00:10:00.000 --> 00:10:02.000\n" +
		"so<00:10:00.000><c>me</c><00:10:01.000><c> words</c>\n"

	doc, _ := Parse(content)
	words := doc.Cues[0].Words
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d: %+v", len(words), words)
	}
	if math.Abs(words[1].Time-601) > 1e-9 {
		t.Errorf("word 1 time = %v, want 601", words[1].Time)
	}
}

func TestParseWordTimesWithinCueRange(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.000\n" +
		"a<00:00:00.500><c> b</c><00:00:03.000><c> c</c>\n"

	doc, _ := Parse(content)
	cue := doc.Cues[0]
	for _, w := range cue.Words {
		if w.Time < cue.Start || w.Time > cue.End {
			t.Errorf("word %q time %v outside cue range [%v, %v]",
				w.Text, w.Time, cue.Start, cue.End)
		}
	}
}

func TestParseIdentifierLine(t *testing.T) {
	content := "WEBVTT\n\n42\n00:00:01.000 --> 00:00:02.000\ntext\n"

	doc, skipped := Parse(content)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "text" {
		t.Fatalf("identifier handling broke parsing: %+v", doc.Cues)
	}
}

func TestParseSkipsMalformedBlock(t *testing.T) {
	content := `WEBVTT

bad --> 00:00:02.000
oops

00:00:03.000 --> 00:00:04.000
fine
`
	doc, skipped := Parse(content)
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}
	if doc.Cues[0].Text != "fine" {
		t.Errorf("surviving cue text = %q, want fine", doc.Cues[0].Text)
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped block, got %d", len(skipped))
	}
	if !strings.Contains(skipped[0].Snippet, "bad") {
		t.Errorf("skip snippet = %q, should reference the bad line", skipped[0].Snippet)
	}
}

func TestParseDropsReversedCue(t *testing.T) {
	content := `WEBVTT

00:00:05.000 --> 00:00:04.000
backwards

00:00:06.000 --> 00:00:07.000
forwards
`
	doc, skipped := Parse(content)
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "forwards" {
		t.Fatalf("expected only the forwards cue, got %+v", doc.Cues)
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0].Reason, "end before start") {
		t.Fatalf("expected an end-before-start skip, got %+v", skipped)
	}
}

func TestParseOrdering(t *testing.T) {
	content := `WEBVTT

00:00:05.000 --> 00:00:06.000
second

00:00:01.000 --> 00:00:02.000
first
`
	doc, _ := Parse(content)
	for i := 1; i < len(doc.Cues); i++ {
		if doc.Cues[i-1].Start > doc.Cues[i].Start {
			t.Errorf("cues out of order at %d: %v > %v",
				i, doc.Cues[i-1].Start, doc.Cues[i].Start)
		}
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, skipped := Parse("WEBVTT\n")
	if len(doc.Cues) != 0 {
		t.Errorf("expected empty document, got %d cues", len(doc.Cues))
	}
	if len(skipped) != 0 {
		t.Errorf("empty document should not report skips: %+v", skipped)
	}
}

func TestParseMultilinePayload(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nline one\nline two\n"

	doc, _ := Parse(content)
	if doc.Cues[0].Text != "line one line two" {
		t.Errorf("multiline payload = %q, want joined lines", doc.Cues[0].Text)
	}
}
