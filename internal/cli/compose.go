package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/editor"
	"github.com/riverfjs/mdlite-go/internal/htmlout"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// composeOps 命令行上的编辑操作，按 bold/italic/underline/align/dir 的顺序应用
type composeOps struct {
	bold      []string
	italic    []string
	underline []string
	align     []string
	dir       []string
}

func newComposeCmd() *cobra.Command {
	var (
		format   string
		fromJSON bool
		ops      composeOps
	)
	cmd := &cobra.Command{
		Use:   "compose [file|-]",
		Short: "Apply rich-text edits to plain text and emit markup, json or html",
		Long: `Builds an editable document (one paragraph per line) and applies edits.

Ranges are "P:FROM-TO" with a 1-based paragraph and rune offsets inside it,
or "P" for the whole paragraph. Paragraph settings are "P:VALUE" or "P-Q:VALUE".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionEdit); err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var doc editor.Doc
			if fromJSON {
				if doc, err = editor.Unmarshal([]byte(input)); err != nil {
					return err
				}
			} else {
				doc = editor.FromText(input)
			}
			if doc, err = ops.apply(doc); err != nil {
				return err
			}
			app.infof("composed %d paragraphs", len(doc.Paragraphs))

			out := cmd.OutOrStdout()
			switch format {
			case "markdown":
				_, err = fmt.Fprintln(out, doc.Markdown())
				return err
			case "json":
				return writeJSON(out, doc)
			case "html":
				html, err := htmlout.RenderEditor(doc, app.Render)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, html)
				return err
			default:
				return fmt.Errorf("unknown compose format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "markdown|json|html")
	cmd.Flags().BoolVar(&fromJSON, "json", false, "input is a document previously written with -f json")
	cmd.Flags().StringArrayVar(&ops.bold, "bold", nil, "toggle bold on a range")
	cmd.Flags().StringArrayVar(&ops.italic, "italic", nil, "toggle italic on a range")
	cmd.Flags().StringArrayVar(&ops.underline, "underline", nil, "toggle underline on a range")
	cmd.Flags().StringArrayVar(&ops.align, "align", nil, "set alignment: P:left|center|right|justify")
	cmd.Flags().StringArrayVar(&ops.dir, "dir", nil, "set direction: P:ltr|rtl")
	return cmd
}

func (o composeOps) apply(doc editor.Doc) (editor.Doc, error) {
	toggles := []struct {
		values []string
		fn     func(editor.Doc, editor.Range) (editor.Doc, error)
	}{
		{o.bold, editor.ToggleBold},
		{o.italic, editor.ToggleItalic},
		{o.underline, editor.ToggleUnderline},
	}
	var err error
	for _, t := range toggles {
		for _, arg := range t.values {
			r, perr := parseRange(doc, arg)
			if perr != nil {
				return editor.Doc{}, perr
			}
			if doc, err = t.fn(doc, r); err != nil {
				return editor.Doc{}, fmt.Errorf("%q: %w", arg, err)
			}
		}
	}
	for _, arg := range o.align {
		first, last, value, perr := parseParagraphSetting(arg)
		if perr != nil {
			return editor.Doc{}, perr
		}
		if doc, err = editor.SetAlignment(doc, first, last, editor.Alignment(value)); err != nil {
			return editor.Doc{}, fmt.Errorf("%q: %w", arg, err)
		}
	}
	for _, arg := range o.dir {
		first, last, value, perr := parseParagraphSetting(arg)
		if perr != nil {
			return editor.Doc{}, perr
		}
		var dir types.Direction
		if err := dir.UnmarshalText([]byte(value)); err != nil {
			return editor.Doc{}, err
		}
		if doc, err = editor.SetDirection(doc, first, last, dir); err != nil {
			return editor.Doc{}, fmt.Errorf("%q: %w", arg, err)
		}
	}
	return doc, nil
}

// parseRange 解析 "P:FROM-TO" 或 "P"
func parseRange(doc editor.Doc, arg string) (editor.Range, error) {
	para, offsets, hasOffsets := strings.Cut(arg, ":")
	p, err := strconv.Atoi(strings.TrimSpace(para))
	if err != nil || p < 1 {
		return editor.Range{}, fmt.Errorf("invalid range %q: paragraph must be a positive number", arg)
	}
	p--
	if !hasOffsets {
		if p >= len(doc.Paragraphs) {
			return editor.Range{}, fmt.Errorf("invalid range %q: %w", arg, editor.ErrInvalidRange)
		}
		return editor.Range{
			Start: editor.Position{Paragraph: p},
			End:   editor.Position{Paragraph: p, Offset: doc.Paragraphs[p].Len()},
		}, nil
	}
	fromStr, toStr, ok := strings.Cut(offsets, "-")
	from, ferr := strconv.Atoi(strings.TrimSpace(fromStr))
	to, terr := strconv.Atoi(strings.TrimSpace(toStr))
	if !ok || ferr != nil || terr != nil {
		return editor.Range{}, fmt.Errorf("invalid range %q: want P:FROM-TO", arg)
	}
	return editor.Range{
		Start: editor.Position{Paragraph: p, Offset: from},
		End:   editor.Position{Paragraph: p, Offset: to},
	}, nil
}

// parseParagraphSetting 解析 "P:VALUE" 或 "P-Q:VALUE"，返回 0 起始的段落区间
func parseParagraphSetting(arg string) (int, int, string, error) {
	paras, value, ok := strings.Cut(arg, ":")
	if !ok || value == "" {
		return 0, 0, "", fmt.Errorf("invalid setting %q: want P:VALUE", arg)
	}
	firstStr, lastStr, isSpan := strings.Cut(paras, "-")
	first, err := strconv.Atoi(strings.TrimSpace(firstStr))
	if err != nil || first < 1 {
		return 0, 0, "", fmt.Errorf("invalid setting %q: paragraph must be a positive number", arg)
	}
	last := first
	if isSpan {
		if last, err = strconv.Atoi(strings.TrimSpace(lastStr)); err != nil {
			return 0, 0, "", fmt.Errorf("invalid setting %q: %w", arg, err)
		}
	}
	return first - 1, last - 1, strings.TrimSpace(value), nil
}
