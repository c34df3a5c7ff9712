package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/extract"
	"github.com/riverfjs/mdlite-go/internal/record"
)

func newExtractCmd() *cobra.Command {
	var (
		title    string
		links    []string
		maxPairs int
		focus    string
		dryRun   bool
		replace  bool
	)
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract QA pairs from a document with the configured LLM and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionExtract); err != nil {
				return err
			}
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			ex, err := app.Extractor()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-pairs") {
				maxPairs = app.V.GetInt("llm.max_pairs")
			}

			app.infof("extracting with %s", app.V.GetString("llm.provider"))
			pairs, err := ex.Extract(cmd.Context(), extract.Request{Content: content, MaxPairs: maxPairs, Focus: focus})
			if err != nil {
				return err
			}
			rec := record.New(title, content, links, pairs, time.Now())

			if !dryRun {
				if err := storeNew(cmd, app, rec, replace); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%s (not saved)\n", rec.Title)
			} else {
				fmt.Fprintf(out, "saved %s: %s\n", rec.ID, rec.Title)
			}
			printPairs(out, rec.QAPairs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "record title (default: first line)")
	cmd.Flags().StringArrayVarP(&links, "link", "l", nil, "source link (repeatable)")
	cmd.Flags().IntVarP(&maxPairs, "max-pairs", "n", 0, "maximum pairs (default from llm.max_pairs)")
	cmd.Flags().StringVar(&focus, "focus", "", "topic the questions should focus on")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print pairs without saving")
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite a stored record with the same content (needs delete permission)")
	return cmd
}
