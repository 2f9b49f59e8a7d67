package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/robertrahardja/ytpy/internal/videoid"
)

// inputTarget is one resolved command-line input: either a single video
// or a playlist that still needs expansion.
type inputTarget struct {
	videoID    string
	playlistID string
	raw        string
}

// parseInputs classifies raw arguments into videos and playlists.
// Playlist URLs win over watch URLs that carry both v= and list=
// parameters only when the argument is a pure playlist link.
func parseInputs(args []string) ([]inputTarget, error) {
	targets := make([]inputTarget, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if id, err := videoid.FromURL(arg); err == nil {
			targets = append(targets, inputTarget{videoID: id, raw: arg})
			continue
		}
		if listID := videoid.PlaylistFromURL(arg); listID != "" {
			targets = append(targets, inputTarget{playlistID: listID, raw: arg})
			continue
		}
		return nil, fmt.Errorf("unrecognized video or playlist reference: %q", arg)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no video or playlist inputs given")
	}
	return targets, nil
}

// readInputFile loads one input per line, skipping blanks and
// #-comments.
func readInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return inputs, nil
}
