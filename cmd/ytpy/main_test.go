package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	want := []string{"fetch", "tracks", "history", "deps", "config"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestFetchFlagShorthands(t *testing.T) {
	root := newRootCommand()

	if config := root.PersistentFlags().Lookup("config"); config == nil {
		t.Fatal("missing --config flag")
	} else if config.Shorthand != "" {
		t.Errorf("--config shorthand = %q, want none", config.Shorthand)
	}

	var fetch *cobra.Command
	for _, sub := range root.Commands() {
		if sub.Name() == "fetch" {
			fetch = sub
			break
		}
	}
	if fetch == nil {
		t.Fatal("missing fetch subcommand")
	}
	clip := fetch.Flags().Lookup("clipboard")
	if clip == nil {
		t.Fatal("missing --clipboard flag")
	}
	if clip.Shorthand != "c" {
		t.Errorf("--clipboard shorthand = %q, want \"c\"", clip.Shorthand)
	}
	if fetch.Flags().Lookup("single-file") == nil {
		t.Error("missing --single-file flag")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})

	if err := root.Execute(); err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[fetch]") {
		t.Errorf("sample missing [fetch] section")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"config", "init", "--path", target})

	if err := root.Execute(); err == nil {
		t.Fatal("expected overwrite refusal")
	}

	root = newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"config", "init", "--path", target, "--overwrite"})
	if err := root.Execute(); err != nil {
		t.Fatalf("overwrite run failed: %v", err)
	}
}

func TestFetchRequiresInputs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"fetch"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error when no inputs are given")
	}
}
