package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quotetool/towercalc/internal/calculation"
	"github.com/quotetool/towercalc/internal/config"
	"github.com/quotetool/towercalc/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "towercalc",
	Short: "Insurance program tower calculator",
	Long:  "Computes attachments, terms, premiums, ILFs, and sub-coverage allocations for an insurance program tower",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "towercalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.String())
			}
		},
	}
}

func newEngine(cmd *cobra.Command) *calculation.TowerEngine {
	engine := calculation.NewTowerEngine()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Compute the full tower report for a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		report, err := newEngine(cmd).RunProgram(cfg)
		if err != nil {
			return err
		}

		generator := output.NewReportGenerator()
		if outFile, _ := cmd.Flags().GetString("output"); outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			generator.Out = f
		}
		format, _ := cmd.Flags().GetString("format")
		return generator.GenerateReport(report, format)
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks [input-file]",
	Short: "Print the effective-date partition of the tower",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		report, err := newEngine(cmd).RunProgram(cfg)
		if err != nil {
			return err
		}
		for _, b := range report.Blocks {
			date := "TBD"
			if b.EffectiveDate != nil {
				date = b.EffectiveDate.String()
			}
			origin := "inherited"
			if b.IsExplicit {
				origin = "explicit"
			}
			fmt.Printf("layers %d-%d  effective %s (%s)\n", b.Start, b.End-1, date, origin)
		}
		return nil
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate [input-file]",
	Short: "Allocate a primary sublimit proportionally onto our layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sublimitStr, _ := cmd.Flags().GetString("sublimit")
		sublimit, err := decimal.NewFromString(sublimitStr)
		if err != nil {
			return fmt.Errorf("invalid --sublimit value %q: %w", sublimitStr, err)
		}

		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := newEngine(cmd)
		matcher := engine.Matcher
		if cfg.Program.OwnCarrier != "" {
			matcher = calculation.MatchCarrierSubstring(cfg.Program.OwnCarrier)
		}
		tower := calculation.NormalizeTower(cfg.Program.Structure.Tower)
		ctx := calculation.BuildContext(tower, matcher)
		if ctx == nil {
			return fmt.Errorf("tower has no layer matching the configured carrier")
		}

		alloc := calculation.Proportional(sublimit, ctx)
		fmt.Printf("our limit:      %s\n", output.FormatCurrency(alloc.Limit))
		fmt.Printf("our attachment: %s\n", output.FormatCurrency(alloc.Attachment))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	calculateCmd.Flags().String("format", "console", "Output format: console, json, or csv")
	calculateCmd.Flags().String("output", "", "Write the report to a file instead of stdout")
	allocateCmd.Flags().String("sublimit", "", "Primary sublimit amount to allocate")
	_ = allocateCmd.MarkFlagRequired("sublimit")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
