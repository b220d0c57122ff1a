package main

import (
	"fmt"
	"strings"

	"github.com/devnagringa/calculadoras/internal/compare"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/devnagringa/calculadoras/internal/transform"
	"github.com/spf13/cobra"
)

func scenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Compare what-if variants of a CLT offer and a PJ contract",
		Long: "Runs the form given by flags or --link against built-in templates " +
			"(--template) and ad-hoc transforms (--transform name:key=value)",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)
			ce.ShareBase, _ = cmd.Flags().GetString("base")

			if list, _ := cmd.Flags().GetBool("list"); list {
				return listScenarioOptions(cmd, ce, transform.NewTransformRegistry(engine.Rules.FatorRThreshold))
			}

			f, err := buildForm(cmd)
			if err != nil {
				return err
			}

			templates, _ := cmd.Flags().GetStringSlice("template")
			specs, _ := cmd.Flags().GetStringArray("transform")
			registry := transform.NewTransformRegistry(engine.Rules.FatorRThreshold)
			transforms := make([]transform.FormTransform, 0, len(specs))
			for _, spec := range specs {
				t, err := registry.Parse(spec)
				if err != nil {
					return fmt.Errorf("invalid --transform %q: %w", spec, err)
				}
				transforms = append(transforms, t)
			}

			compSet, err := ce.Compare(cmd.Context(), f, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			formatter, err := compare.GetFormatter(format)
			if err != nil {
				return err
			}
			out, err := formatter.Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	addFormFlags(cmd, append(append([]string{}, cltKeys...), pjKeys...))
	cmd.Flags().StringSlice("template", nil, "Built-in template to compare (repeatable)")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc transform as name:key=value,... (repeatable)")
	cmd.Flags().Bool("list", false, "List templates and transforms")
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share links point to")
	return cmd
}

func listScenarioOptions(cmd *cobra.Command, ce *compare.CompareEngine, registry *transform.TransformRegistry) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Templates:")
	for _, name := range ce.TemplateRegistry.List() {
		t, _ := ce.TemplateRegistry.Get(name)
		fmt.Fprintf(out, "  %-16s %s\n", name, t.Description)
	}
	fmt.Fprintln(out, "Transforms:")
	for _, name := range registry.List() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
