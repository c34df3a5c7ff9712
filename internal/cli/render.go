package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	mdlite "github.com/riverfjs/mdlite-go"
	"github.com/riverfjs/mdlite-go/internal/termout"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		width  int
		plain  bool
		stats  bool
		fetch  bool
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render text to html, terminal, text, entities, json or content chunks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			opts := []mdlite.Option{mdlite.WithConfig(app.Render)}

			if stats {
				return writeJSON(out, mdlite.CountText(mdlite.Render(input, opts...)))
			}

			switch format {
			case "html":
				html, err := mdlite.RenderHTML(input, opts...)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, html)
				return err
			case "terminal":
				if !cmd.Flags().Changed("width") {
					width = app.V.GetInt("render.terminal_width")
				}
				r := termout.New(width, app.Render)
				if plain {
					r.Styles = termout.PlainStyles()
				}
				_, err := fmt.Fprintln(out, r.Render(mdlite.Render(input, opts...)))
				return err
			case "text":
				text, _ := mdlite.Flatten(mdlite.Render(input, opts...).Blocks)
				_, err := fmt.Fprintln(out, text)
				return err
			case "entities":
				text, entities := mdlite.Flatten(mdlite.Render(input, opts...).Blocks)
				return writeJSON(out, map[string]any{"text": text, "entities": entities})
			case "json":
				return writeJSON(out, mdlite.Render(input, opts...))
			case "chunks":
				opts = append(opts,
					mdlite.WithMaxLength(app.V.GetInt("render.max_length")),
					mdlite.WithFetchMedia(fetch),
				)
				contents, err := mdlite.Process(cmd.Context(), input, opts...)
				if err != nil {
					return err
				}
				app.infof("processed into %d contents", len(contents))
				return writeChunks(out, contents, outDir)
			default:
				return fmt.Errorf("unknown render format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "terminal", "html|terminal|text|entities|json|chunks")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "terminal width for right-aligning RTL blocks")
	cmd.Flags().BoolVar(&plain, "plain", false, "terminal output without colors")
	cmd.Flags().BoolVar(&stats, "stats", false, "print block/word/character counts instead")
	cmd.Flags().BoolVar(&fetch, "fetch-media", false, "download images and video thumbnails (chunks format)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write downloaded media into this directory (chunks format)")
	return cmd
}

type chunkSummary struct {
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Text      string          `json:"text,omitempty"`
	Direction string          `json:"direction,omitempty"`
	Entities  []mdlite.Entity `json:"entities,omitempty"`
	FileName  string          `json:"file_name,omitempty"`
	Format    string          `json:"format,omitempty"`
	Width     int             `json:"width,omitempty"`
	Height    int             `json:"height,omitempty"`
	Bytes     int             `json:"bytes,omitempty"`
}

func writeChunks(w io.Writer, contents []mdlite.Content, outDir string) error {
	summaries := make([]chunkSummary, 0, len(contents))
	for _, c := range contents {
		s := chunkSummary{Type: c.GetContentType().String(), Source: c.GetContentTrace().SourceType}
		switch v := c.(type) {
		case *mdlite.Text:
			s.Text = v.Text
			s.Direction = v.Direction.String()
			s.Entities = v.Entities
		case *mdlite.Photo:
			s.Text = v.CaptionText
			s.Entities = v.CaptionEntities
			s.FileName = v.FileName
			s.Format = v.Format
			s.Width, s.Height = v.Width, v.Height
			s.Bytes = len(v.FileData)
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(outDir, v.FileName), v.FileData, 0o644); err != nil {
					return err
				}
			}
		}
		summaries = append(summaries, s)
	}
	return writeJSON(w, summaries)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
