package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseInputsClassifies(t *testing.T) {
	targets, err := parseInputs([]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/abc123def45",
		"https://www.youtube.com/playlist?list=PL590L5WQmH8dpP0RyH5pCfIaDEdt9nk7r",
		"https://youtu.be/?list=PLshared01",
		"xyz987xyz98",
	})
	if err != nil {
		t.Fatalf("parseInputs returned error: %v", err)
	}
	if len(targets) != 5 {
		t.Fatalf("len(targets) = %d", len(targets))
	}
	if targets[0].videoID != "dQw4w9WgXcQ" {
		t.Errorf("targets[0] = %+v", targets[0])
	}
	if targets[1].videoID != "abc123def45" {
		t.Errorf("targets[1] = %+v", targets[1])
	}
	if targets[2].playlistID != "PL590L5WQmH8dpP0RyH5pCfIaDEdt9nk7r" {
		t.Errorf("targets[2] = %+v", targets[2])
	}
	if targets[3].playlistID != "PLshared01" {
		t.Errorf("targets[3] = %+v", targets[3])
	}
	if targets[4].videoID != "xyz987xyz98" {
		t.Errorf("targets[4] = %+v", targets[4])
	}
}

func TestParseInputsRejectsGarbage(t *testing.T) {
	if _, err := parseInputs([]string{"https://example.com/nothing"}); err == nil {
		t.Fatal("expected error for non-youtube URL")
	}
	if _, err := parseInputs(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.txt")
	content := "# favorites\nhttps://youtu.be/abc123def45\n\n  dQw4w9WgXcQ  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input file: %v", err)
	}

	inputs, err := readInputFile(path)
	if err != nil {
		t.Fatalf("readInputFile returned error: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("len(inputs) = %d, want 2", len(inputs))
	}
	if inputs[0] != "https://youtu.be/abc123def45" || inputs[1] != "dQw4w9WgXcQ" {
		t.Fatalf("inputs = %v", inputs)
	}
}

func TestReadInputFileMissing(t *testing.T) {
	if _, err := readInputFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
