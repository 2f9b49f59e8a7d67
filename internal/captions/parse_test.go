package captions

import (
	"reflect"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	if got := DetectFormat("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhi\n"); got != FormatVTT {
		t.Errorf("expected vtt, got %q", got)
	}
	if got := DetectFormat("1\n00:00:01,000 --> 00:00:02,000\nhi\n"); got != FormatSRT {
		t.Errorf("expected srt, got %q", got)
	}
}

func TestParseSRT(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nHello world.\n\n2\n00:00:02,000 --> 00:00:03,000\nSecond cue\nwith two lines\n"
	cues := Parse(raw, FormatSRT)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if !reflect.DeepEqual(cues[0].Lines, []string{"Hello world."}) {
		t.Errorf("first cue = %v", cues[0].Lines)
	}
	if !reflect.DeepEqual(cues[1].Lines, []string{"Second cue", "with two lines"}) {
		t.Errorf("second cue = %v", cues[1].Lines)
	}
}

func TestParseVTTSkipsHeaderAndMetadata(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\nNOTE internal\n\n00:00:01.000 --> 00:00:02.000\n<c>Hello</c> world\n\nSTYLE\n\n00:00:02.000 --> 00:00:03.000 align:start position:0%\nsecond\n"
	cues := Parse(raw, FormatAuto)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d: %v", len(cues), cues)
	}
	if cues[0].Lines[0] != "Hello world" {
		t.Errorf("markup not stripped: %q", cues[0].Lines[0])
	}
}

func TestParseDecodesEntities(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nTom &amp; Jerry &lt;3 &quot;cats&quot; don&#39;t\n"
	cues := Parse(raw, FormatVTT)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	want := `Tom & Jerry <3 "cats" don't`
	if cues[0].Lines[0] != want {
		t.Errorf("entities = %q, want %q", cues[0].Lines[0], want)
	}
}

func TestParseFlushesPendingBufferAtEOF(t *testing.T) {
	raw := "00:00:01,000 --> 00:00:02,000\ntrailing text with no final newline"
	cues := Parse(raw, FormatSRT)
	if len(cues) != 1 || cues[0].Lines[0] != "trailing text with no final newline" {
		t.Fatalf("expected trailing cue, got %v", cues)
	}
}

func TestParseDropsEmptyCues(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\n\n\n2\n00:00:02,000 --> 00:00:03,000\n<c></c>\n\n3\n00:00:03,000 --> 00:00:04,000\nreal text\n"
	cues := Parse(raw, FormatSRT)
	if len(cues) != 1 {
		t.Fatalf("expected only the non-empty cue, got %d", len(cues))
	}
}

func TestParseMalformedYieldsNoCues(t *testing.T) {
	if cues := Parse("", FormatAuto); len(cues) != 0 {
		t.Errorf("empty input produced %d cues", len(cues))
	}
	if cues := Parse("WEBVTT\nKind: captions\n\n\n", FormatAuto); len(cues) != 0 {
		t.Errorf("header-only input produced %d cues", len(cues))
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	raw := "1\r\n00:00:01,000 --> 00:00:02,000\r\nwindows line\r\n\r\n"
	cues := Parse(raw, FormatSRT)
	if len(cues) != 1 || cues[0].Lines[0] != "windows line" {
		t.Fatalf("crlf handling failed: %v", cues)
	}
}
