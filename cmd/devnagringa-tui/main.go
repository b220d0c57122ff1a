package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/config"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/devnagringa/calculadoras/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devnagringa-tui [share-link]",
		Short: "Interactive CLT vs PJ calculator",
		Long:  "Opens the calculators in the terminal, optionally pre-filled from a share link or query string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := modelOptions(cmd, args)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("history", "", "History file (default: user config dir)")
	cmd.Flags().Bool("no-history", false, "Do not read or write the link history")
	cmd.Flags().String("rules", "", "YAML file overriding the built-in tax tables")
	cmd.Flags().String("base", form.DefaultShareBase, "Page share links point to")
	return cmd
}

// modelOptions turns flags and the optional share link into tui.Options
func modelOptions(cmd *cobra.Command, args []string) (tui.Options, error) {
	opts := tui.Options{Form: form.Default()}
	opts.ShareBase, _ = cmd.Flags().GetString("base")

	if len(args) == 1 {
		query := args[0]
		if i := strings.Index(query, "?"); i >= 0 {
			query = query[i+1:]
		}
		opts.Form = form.Decode(query)
	}

	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		rules, err := config.NewInputParser().LoadFromFile(rulesFile)
		if err != nil {
			return opts, err
		}
		opts.Engine = calculation.NewEngineWithRules(*rules)
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		return opts, nil
	}
	path, _ := cmd.Flags().GetString("history")
	if path == "" {
		var err error
		if path, err = form.DefaultHistoryPath(); err != nil {
			return opts, err
		}
	}
	opts.HistoryPath = path
	return opts, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
