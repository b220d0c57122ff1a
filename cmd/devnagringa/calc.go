package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"unicode"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/devnagringa/calculadoras/internal/preview"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	cltKeys = []string{"gs", "va", "vt", "ps", "ob", "tc", "plr", "oe", "dc"}
	pjKeys  = []string{"fp", "pl", "ct", "f12"}
)

// flagName turns a form field name like revenue12Months into revenue12-months
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// addFormFlags registers one string flag per numeric key plus the flags
// belonging to the same calculator
func addFormFlags(cmd *cobra.Command, keys []string) {
	for _, key := range keys {
		k, _ := form.LookupKey(key)
		cmd.Flags().String(flagName(k.Name), "", fmt.Sprintf("Form field %s (link key %q)", k.Name, k.Key))
	}
	for _, key := range keys {
		switch key {
		case "gs":
			cmd.Flags().Bool("fgts", false, "Count FGTS in the CLT take-home")
		case "fp":
			cmd.Flags().Bool("export", false, "Service exported abroad (no ISS)")
			cmd.Flags().String("annex", "auto", "Simples Nacional annex: auto, 3 or 5")
		}
	}
	cmd.Flags().String("link", "", "Start from a share link or query string")
}

// buildForm starts from --link and applies every flag set explicitly
func buildForm(cmd *cobra.Command) (form.Form, error) {
	link, _ := cmd.Flags().GetString("link")
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[i+1:]
	}
	f := form.Decode(link)

	for _, k := range form.NumericKeys {
		flag := cmd.Flags().Lookup(flagName(k.Name))
		if flag == nil || !flag.Changed {
			continue
		}
		raw := flag.Value.String()
		if _, ok := form.ParseDecimal(raw); !ok {
			return f, fmt.Errorf("invalid value for --%s: %q", flag.Name, raw)
		}
		k.Field(&f).Set(raw)
	}

	if cmd.Flags().Changed("fgts") {
		f.IncludeFGTS, _ = cmd.Flags().GetBool("fgts")
	}
	if cmd.Flags().Changed("export") {
		f.IsExportService, _ = cmd.Flags().GetBool("export")
	}
	if cmd.Flags().Changed("annex") {
		raw, _ := cmd.Flags().GetString("annex")
		annex, err := domain.ParseAnnexSelection(raw)
		if err != nil || annex == domain.AnnexManual {
			return f, fmt.Errorf("invalid value for --annex: %q", raw)
		}
		f.Annex = annex
	}
	return f, nil
}

func shareLink(cmd *cobra.Command, f form.Form) string {
	if f.Encode() == "" {
		return ""
	}
	base, _ := cmd.Flags().GetString("base")
	return f.Link(base)
}

func cltCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clt",
		Short: "Calculate the monthly CLT take-home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			res := engine.CalculateCLT(f.CLTInput())
			return writeReport(cmd, &output.Report{CLT: &res, Link: shareLink(cmd, f)})
		},
	}
	addFormFlags(cmd, cltKeys)
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share link points to")
	return cmd
}

func pjCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pj",
		Short: "Calculate the monthly PJ take-home under Simples Nacional",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			res := engine.CalculatePJ(f.PJInput())
			return writeReport(cmd, &output.Report{PJ: &res, Link: shareLink(cmd, f)})
		},
	}
	addFormFlags(cmd, pjKeys)
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share link points to")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare CLT and PJ take-home side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			cmp := engine.Compare(f.CLTInput(), f.PJInput())
			return writeReport(cmd, &output.Report{Comparison: &cmp, Link: shareLink(cmd, f)})
		},
	}
	addFormFlags(cmd, append(append([]string{}, cltKeys...), pjKeys...))
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share link points to")
	return cmd
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the PJ revenue that matches a CLT offer",
		Long: "Searches the monthly PJ revenue whose take-home equals the CLT take-home " +
			"plus the monthly value of 13th salary, vacation and FGTS",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := calculation.DefaultBreakEvenOptions()
			opts.Tolerance = decimal.NewFromFloat(tolerance)
			res, err := engine.BreakEvenRevenue(ctx, f.CLTInput(), f.PJInput(), opts)
			if err != nil {
				return err
			}
			return writeReport(cmd, &output.Report{BreakEven: res})
		},
	}
	addFormFlags(cmd, append(append([]string{}, cltKeys...), pjKeys...))
	cmd.Flags().Float64("tolerance", 1, "Stop when the revenue is known within this many reais")
	return cmd
}

func investmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investment",
		Short: "Project a compound-interest investment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := investmentInput(cmd)
			if err != nil {
				return err
			}
			res := calculation.CalculateInvestmentResults(in)
			return writeReport(cmd, &output.Report{Investment: &res})
		},
	}
	cmd.Flags().String("initial", "0", "Initial deposit")
	cmd.Flags().String("monthly", "0", "Monthly contribution")
	cmd.Flags().Int("period", 10, "Investment period")
	cmd.Flags().String("period-type", string(domain.PeriodYears), "Period unit: anos or meses")
	cmd.Flags().String("rate", "0", "Yearly interest rate in percent")
	return cmd
}

func investmentInput(cmd *cobra.Command) (domain.InvestmentInput, error) {
	var in domain.InvestmentInput
	amounts := []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"initial", &in.InitialDeposit},
		{"monthly", &in.MonthlyContribution},
		{"rate", &in.InterestRate},
	}
	for _, a := range amounts {
		raw, _ := cmd.Flags().GetString(a.flag)
		value, ok := form.ParseDecimal(raw)
		if !ok || value.IsNegative() {
			return in, fmt.Errorf("invalid value for --%s: %q", a.flag, raw)
		}
		*a.dst = value
	}

	in.Period, _ = cmd.Flags().GetInt("period")
	if in.Period < 0 {
		return in, fmt.Errorf("--period must not be negative")
	}
	periodType, _ := cmd.Flags().GetString("period-type")
	switch domain.PeriodType(periodType) {
	case domain.PeriodYears, domain.PeriodMonths:
		in.PeriodType = domain.PeriodType(periodType)
	default:
		return in, fmt.Errorf("invalid value for --period-type: %q", periodType)
	}
	if !in.WithinLimit() {
		return in, fmt.Errorf("period longer than 100 years")
	}
	return in, nil
}

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build a share link for the calculator page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			base, _ := cmd.Flags().GetString("base")
			fmt.Fprintln(cmd.OutOrStdout(), f.Link(base))

			remember, _ := cmd.Flags().GetBool("remember")
			if !remember || f.Encode() == "" {
				return nil
			}
			return pushHistory(cmd, f.Encode())
		},
	}
	addFormFlags(cmd, append(append([]string{}, cltKeys...), pjKeys...))
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share link points to")
	cmd.Flags().Bool("remember", false, "Add the link to the history shared with the TUI")
	cmd.Flags().String("history", "", "History file (default: user config dir)")
	return cmd
}

func historyPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("history")
	if path != "" {
		return path, nil
	}
	return form.DefaultHistoryPath()
}

func pushHistory(cmd *cobra.Command, query string) error {
	path, err := historyPath(cmd)
	if err != nil {
		return err
	}
	h, err := form.LoadHistory(path)
	if err != nil {
		return err
	}
	h.Push(query)
	return form.SaveHistory(path, h)
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently saved share links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := historyPath(cmd)
			if err != nil {
				return err
			}
			h, err := form.LoadHistory(path)
			if err != nil {
				return err
			}
			if len(h.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum link salvo")
				return nil
			}
			base, _ := cmd.Flags().GetString("base")
			for i, query := range h.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, form.Decode(query).Link(base))
			}
			return nil
		},
	}
	cmd.Flags().String("history", "", "History file (default: user config dir)")
	cmd.Flags().String("base", form.DefaultShareBase, "Page the share links point to")
	return cmd
}

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the CLT social-preview card as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildForm(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("out")
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer file.Close()

			if err := preview.NewRenderer().Render(file, engine.CalculateCLT(f.CLTInput())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Prévia salva em %s\n", path)
			return nil
		},
	}
	addFormFlags(cmd, cltKeys)
	cmd.Flags().StringP("out", "o", "preview.png", "PNG file to write")
	return cmd
}
