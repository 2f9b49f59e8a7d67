package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertrahardja/ytpy/internal/language"
	"github.com/robertrahardja/ytpy/internal/provider/timedtext"
	"github.com/robertrahardja/ytpy/internal/videoid"
)

func newTracksCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <url|video-id>",
		Short: "List the caption tracks available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cmdCtx.ensureConfig(); err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger()
			if err != nil {
				return err
			}

			id, err := videoid.FromURL(args[0])
			if err != nil {
				return err
			}

			client := timedtext.New(timedtext.WithLogger(logger))
			catalog, err := client.ListTracks(cmd.Context(), id)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(catalog))
			for _, track := range catalog {
				name := track.Name
				if name == "" {
					name = language.DisplayName(track.LanguageCode)
				}
				rows = append(rows, []string{track.LanguageCode, name, track.Kind()})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Language", "Name", "Kind"}, rows))
			return nil
		},
	}
}
