package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab-backend/internal/app"
	"github.com/heartmarshall/vocab-backend/internal/wordlist"
)

func newPreloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preload",
		Short: "Import a word list with placeholder content",
		Long: "Reads the word list, keeps plain lowercase words of 2 to 20 letters and stores " +
			"them with placeholder meaning and example. Previously preloaded words are removed " +
			"first unless --keep is given. Words already in the store are never overwritten.\n\n" +
			"Plain lists carry one word per line. CSV lists (such as NGSL) carry a header row " +
			"and the word in the first column.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			keep, _ := cmd.Flags().GetBool("keep")
			formatFlag, _ := cmd.Flags().GetString("format")

			format, err := wordlist.ParseFormat(formatFlag, path)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open word list: %w", err)
				}
				defer f.Close()

				res, err := a.Maintenance.Preload(ctx, f, format, keep)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "read %d, accepted %d, inserted %d, skipped %d, removed %d\n",
					res.Read, res.Accepted, res.Inserted, res.Skipped, res.Deleted)
				return nil
			})
		},
	}
	cmd.Flags().String("file", "words.txt", "word list path")
	cmd.Flags().String("format", "", "word list format: plain or csv (default: by file extension)")
	cmd.Flags().Bool("keep", false, "keep previously preloaded words")
	return cmd
}
