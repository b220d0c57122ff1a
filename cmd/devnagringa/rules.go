package main

import (
	"fmt"

	"github.com/devnagringa/calculadoras/internal/config"
	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Validate a tax rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesFile := args[0]

			parser := config.NewInputParser()
			rules, err := parser.LoadFromFile(rulesFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s is valid (tables of %d)\n", rulesFile, rules.Year)
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the assumptions behind the tax tables in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			if export, _ := cmd.Flags().GetString("export"); export != "" {
				if err := config.NewInputParser().SaveToFile(export, engine.Rules); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rules written to %s\n", export)
				return nil
			}

			for _, line := range output.Assumptions(engine.Rules) {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", line)
			}
			return nil
		},
	}
	cmd.Flags().String("export", "", "Write the tables to a YAML file instead")
	return cmd
}
