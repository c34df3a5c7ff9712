package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	mdlite "github.com/riverfjs/mdlite-go"
	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/record"
	"github.com/riverfjs/mdlite-go/internal/store"
	"github.com/riverfjs/mdlite-go/internal/termout"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage stored training records",
	}
	cmd.AddCommand(newDocAddCmd())
	cmd.AddCommand(newDocListCmd())
	cmd.AddCommand(newDocShowCmd())
	cmd.AddCommand(newDocApproveCmd())
	cmd.AddCommand(newDocEditCmd())
	cmd.AddCommand(newDocDeleteCmd())
	return cmd
}

// parsePair splits "question::answer".
func parsePair(s string) (record.QAPair, error) {
	q, a, ok := strings.Cut(s, "::")
	q, a = strings.TrimSpace(q), strings.TrimSpace(a)
	if !ok || q == "" || a == "" {
		return record.QAPair{}, fmt.Errorf("pair %q must look like question::answer", s)
	}
	return record.QAPair{Question: q, Answer: a}, nil
}

// storeNew 保存新记录；同 id 的记录已存在时报错，除非 replace。
// 覆盖会丢弃已有问答与审批状态，因此需要删除权限。
func storeNew(cmd *cobra.Command, app *App, rec *record.Record, replace bool) error {
	if replace {
		if err := app.Authorize(access.ActionDelete); err != nil {
			return fmt.Errorf("replace %s: %w", rec.ID, err)
		}
	}
	return app.WithStore(cmd.Context(), func(st *store.Store) error {
		if replace {
			return st.Save(cmd.Context(), rec)
		}
		return st.Create(cmd.Context(), rec)
	})
}

func newDocAddCmd() *cobra.Command {
	var (
		title    string
		links    []string
		rawPairs []string
		replace  bool
	)
	cmd := &cobra.Command{
		Use:   "add [file|-]",
		Short: "Store a document with hand-written QA pairs",
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
			if strings.TrimSpace(content) == "" {
				return errors.New("document is empty")
			}
			pairs := make([]record.QAPair, 0, len(rawPairs))
			for _, s := range rawPairs {
				p, err := parsePair(s)
				if err != nil {
					return err
				}
				pairs = append(pairs, p)
			}
			rec := record.New(title, content, links, pairs, time.Now())
			if err := storeNew(cmd, app, rec, replace); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s\n", rec.ID, rec.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "record title (default: first line)")
	cmd.Flags().StringArrayVarP(&links, "link", "l", nil, "source link (repeatable)")
	cmd.Flags().StringArrayVarP(&rawPairs, "pair", "p", nil, "QA pair as question::answer (repeatable)")
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite a stored record with the same content (needs delete permission)")
	return cmd
}

func newDocListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionView); err != nil {
				return err
			}
			st, err := record.ParseStatus(status)
			if err != nil {
				return err
			}
			return app.WithStore(cmd.Context(), func(s *store.Store) error {
				recs, err := s.List(cmd.Context(), st)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSTATUS\tPAIRS\tUPDATED\tTITLE")
				for _, r := range recs {
					fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n",
						r.ID, r.Status, len(r.ApprovedPairs()), len(r.QAPairs),
						r.UpdatedAt.Local().Format("2006-01-02 15:04"), r.Title)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status: pending or approved")
	return cmd
}

func newDocShowCmd() *cobra.Command {
	var (
		format string
		plain  bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionView); err != nil {
				return err
			}
			return app.WithStore(cmd.Context(), func(s *store.Store) error {
				rec, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch format {
				case "json":
					return writeJSON(out, rec)
				case "html":
					html, err := mdlite.RenderHTML(rec.OriginalContent, mdlite.WithConfig(app.Render))
					if err != nil {
						return err
					}
					_, err = io.WriteString(out, html)
					return err
				case "terminal":
					r := termout.New(app.V.GetInt("render.terminal_width"), app.Render)
					if plain {
						r.Styles = termout.PlainStyles()
					}
					fmt.Fprintf(out, "%s  [%s]  %s\n\n", rec.ID, rec.Status, rec.Title)
					fmt.Fprintln(out, r.Render(mdlite.Render(rec.OriginalContent, mdlite.WithConfig(app.Render))))
					for _, l := range rec.SourceLinks {
						fmt.Fprintf(out, "source: %s\n", l)
					}
					fmt.Fprintln(out)
					printPairs(out, rec.QAPairs)
					return nil
				default:
					return fmt.Errorf("unknown show format %q", format)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "terminal", "terminal|json|html")
	cmd.Flags().BoolVar(&plain, "plain", false, "terminal output without colors")
	return cmd
}

func newDocApproveCmd() *cobra.Command {
	var (
		pair   int
		revoke bool
	)
	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve one QA pair, or every pair when --pair is omitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionApprove); err != nil {
				return err
			}
			// --pair is 1-based on the command line
			idx := pair - 1
			return app.WithStore(cmd.Context(), func(s *store.Store) error {
				rec, err := s.SetApproval(cmd.Context(), args[0], idx, !revoke)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d pairs approved, status %s\n",
					rec.ID, len(rec.ApprovedPairs()), len(rec.QAPairs), rec.Status)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&pair, "pair", "p", 0, "pair number (1-based); 0 means all pairs")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "withdraw approval instead")
	return cmd
}

func newDocEditCmd() *cobra.Command {
	var (
		pair     int
		question string
		answer   string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the question or answer of a QA pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionEdit); err != nil {
				return err
			}
			if pair < 1 {
				return errors.New("--pair is required")
			}
			if question == "" && answer == "" {
				return errors.New("nothing to change; pass --question and/or --answer")
			}
			return app.WithStore(cmd.Context(), func(s *store.Store) error {
				rec, err := s.UpdatePair(cmd.Context(), args[0], pair-1, question, answer)
				if err != nil {
					return err
				}
				p := rec.QAPairs[pair-1]
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s pair %d\nQ: %s\nA: %s\n", rec.ID, pair, p.Question, p.Answer)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&pair, "pair", "p", 0, "pair number (1-based)")
	cmd.Flags().StringVarP(&question, "question", "q", "", "new question text")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "new answer text")
	return cmd
}

func newDocDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Authorize(access.ActionDelete); err != nil {
				return err
			}
			return app.WithStore(cmd.Context(), func(s *store.Store) error {
				for _, id := range args {
					if err := s.Delete(cmd.Context(), id); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
				}
				return nil
			})
		},
	}
	return cmd
}

func printPairs(w io.Writer, pairs []record.QAPair) {
	for i, p := range pairs {
		mark := " "
		if p.Approved {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "[%s] %d. Q: %s\n       A: %s\n", mark, i+1, p.Question, p.Answer)
	}
}
