package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dotaresponses/internal/domain"
	"dotaresponses/internal/query"
)

// readQuery joins the positional arguments and applies the hero/text syntax.
// An explicit --hero flag wins over a hero given inline.
func readQuery(args []string, hero, defaultText string) domain.Query {
	q := query.Parse(strings.Join(args, " "), defaultText)
	if hero != "" {
		q.Hero = hero
	}
	return q
}

func newBestCmd(a *app) *cobra.Command {
	var hero string
	cmd := &cobra.Command{
		Use:   "best [hero/]<text>",
		Short: "Print the response matching the most words of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			q := readQuery(args, hero, "")
			if q.Text == "" {
				return fmt.Errorf("empty query")
			}
			m, ok := svc.Best(q)
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "Failed to find a response!")
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", svc.DisplayName(m.Group), m.Response.Text)
			if ref := m.Response.AudioRef(); ref != "" {
				fmt.Fprintln(out, ref)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hero, "hero", "", "Only search groups whose name contains this text")
	return cmd
}

func newAllCmd(a *app) *cobra.Command {
	var (
		hero   string
		output string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "all [hero/]<text>",
		Short: "List every response containing text, grouped by hero",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			q := readQuery(args, hero, a.cfg.Search.DefaultQuery)
			res := svc.All(q)
			if cmd.Flags().Changed("limit") {
				res = svc.AllN(q, limit)
			}
			out := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "table", "":
				if len(res) == 0 {
					fmt.Fprintf(out, "No responses contain %q.\n", q.Text)
					return nil
				}
				fmt.Fprintln(out, renderResponses(res))
				return nil
			default:
				return fmt.Errorf("unsupported output %q", output)
			}
		},
	}
	cmd.Flags().StringVar(&hero, "hero", "", "Only search groups whose name contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of responses, 0 for no limit (default from search.max_results)")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus size per group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			c := svc.Store().Snapshot()
			rows := make([][]string, 0, c.Len())
			for g := range c.Groups() {
				rows = append(rows, []string{svc.DisplayName(g.Name()), fmt.Sprint(g.Len())})
			}
			st := svc.Stats()
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Group", "Responses"}, rows, map[int]bool{1: true}))
			fmt.Fprintf(cmd.OutOrStdout(), "%d groups, %d responses\n", st.Groups, st.Responses)
			return nil
		},
	}
}
