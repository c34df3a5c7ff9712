package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/export"
	"github.com/riverfjs/mdlite-go/internal/record"
	"github.com/riverfjs/mdlite-go/internal/store"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
		all    bool
		ids    []string
		bom    bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as csv, json, jsonl, doc, html or text",
		Long: `Export stored records. By default only approved QA pairs are written.
Use --output - to write to stdout, or a directory to get a generated file name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionExport); err != nil {
				return err
			}
			if format == "" {
				format = app.V.GetString("export.format")
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			opts := export.Options{
				Format:       f,
				ApprovedOnly: app.V.GetBool("export.approved_only") && !all,
				BOM:          app.V.GetBool("export.bom"),
				Config:       app.Render,
			}
			if cmd.Flags().Changed("bom") {
				opts.BOM = bom
			}

			var recs []*record.Record
			if err := app.WithStore(cmd.Context(), func(s *store.Store) error {
				if len(ids) == 0 {
					recs, err = s.List(cmd.Context(), "")
					return err
				}
				for _, id := range ids {
					r, err := s.Get(cmd.Context(), id)
					if err != nil {
						return err
					}
					recs = append(recs, r)
				}
				return nil
			}); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.Export(&buf, recs, opts); err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			path := output
			if path == "" {
				path = "."
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, export.Filename(recs, f))
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			app.infof("exported %d records as %s", len(recs), f)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv|json|jsonl|doc|html|text (default from export.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, directory, or - for stdout (default: current directory)")
	cmd.Flags().BoolVar(&all, "all", false, "include unapproved pairs")
	cmd.Flags().StringArrayVar(&ids, "id", nil, "export only these record ids (repeatable)")
	cmd.Flags().BoolVar(&bom, "bom", false, "prefix CSV with a UTF-8 BOM (default from export.bom)")
	return cmd
}
