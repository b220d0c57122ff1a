package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/config"
	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devnagringa %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// newCLILogger writes engine traces to w in logrus text format. Below
// debug level the engine stays quiet.
func newCLILogger(w io.Writer, debugEnabled bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debugEnabled {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// newEngine builds the calculation engine from the --rules and --debug flags
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	debugEnabled, _ := cmd.Flags().GetBool("debug")

	engine := calculation.NewEngine()
	if rulesFile != "" {
		if !fileExists(rulesFile) {
			return nil, fmt.Errorf("rules file not found: %s", rulesFile)
		}
		rules, err := config.NewInputParser().LoadFromFile(rulesFile)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewEngineWithRules(*rules)
	}
	engine.SetLogger(newCLILogger(cmd.ErrOrStderr(), debugEnabled))
	return engine, nil
}

// writeReport renders r with the --format formatter, printing it and, with
// --save, also writing it to a timestamped file
func writeReport(cmd *cobra.Command, r *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	data, err := formatter.Format(r)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if save {
		ext := formatter.Name()
		if ext == "console" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(formatter, r, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Relatório salvo em %s\n", filename)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "devnagringa",
		Short: "Calculadoras CLT vs PJ do Dev na Gringa",
		Long: "Calcula o salário líquido CLT, a retirada PJ pelo Simples Nacional, " +
			"o faturamento PJ equivalente e projeções de juros compostos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	formats := append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...)
	root.PersistentFlags().StringP("format", "f", "console", "Output format: "+strings.Join(formats, ", "))
	root.PersistentFlags().String("rules", "", "YAML file overriding the built-in tax tables")
	root.PersistentFlags().Bool("debug", false, "Print calculation traces to stderr")
	root.PersistentFlags().Bool("save", false, "Also write the report to a calculo_<timestamp> file")

	root.AddCommand(
		cltCmd(),
		pjCmd(),
		compareCmd(),
		breakEvenCmd(),
		scenariosCmd(),
		investmentCmd(),
		linkCmd(),
		historyCmd(),
		previewCmd(),
		validateCmd(),
		rulesCmd(),
		serveCmd(),
		tokenCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
