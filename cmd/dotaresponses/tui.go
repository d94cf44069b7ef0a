package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dotaresponses/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Search responses interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if err := a.watch(ctx, svc); err != nil {
				return err
			}
			st := svc.Stats()
			summary := fmt.Sprintf("%s: %d heroes, %d responses", a.cfg.Corpus.Path, st.Groups, st.Responses)
			m := tui.New(svc, summary, a.cfg.Search.GroupSuffix, a.cfg.Search.DefaultQuery)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
