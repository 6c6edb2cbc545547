// Package output renders computed program reports. The engine itself
// returns plain values; everything presentation-shaped lives here.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// ReportGenerator renders a ProgramReport in one of the supported formats.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a generator writing to stdout.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Out: os.Stdout}
}

// GenerateReport renders the report in the requested format.
func (rg *ReportGenerator) GenerateReport(report *domain.ProgramReport, format string) error {
	switch format {
	case "console", "":
		return rg.GenerateConsoleReport(report)
	case "json":
		return rg.GenerateJSONReport(report)
	case "csv":
		return rg.GenerateCSVReport(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport renders a human-readable tower report.
func (rg *ReportGenerator) GenerateConsoleReport(report *domain.ProgramReport) error {
	w := rg.Out

	title := "TOWER ANALYSIS"
	if report.Name != "" {
		title = fmt.Sprintf("TOWER ANALYSIS: %s", report.Name)
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-3s %-22s %14s %14s %12s %8s\n",
		"#", "Carrier", "Limit", "Attachment", "Actual Prem", "ILF")
	for _, row := range report.Layers {
		carrier := row.Carrier
		if row.IsOwn {
			carrier += " *"
		}
		limit := FormatCurrency(row.Limit)
		if row.QuotaShare != nil {
			limit = fmt.Sprintf("%s of %s", FormatCurrency(row.Limit), FormatCurrency(*row.QuotaShare))
		}
		fmt.Fprintf(w, "%-3d %-22s %14s %14s %12s %8s\n",
			row.Index, carrier, limit, FormatCurrency(row.Attachment),
			formatOptionalCurrency(row.ActualPremium), formatOptionalFactor(row.ILF))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Pro-rata factor: %s", report.ProRataFactor.Round(4).String())
	if report.ShortTerm {
		fmt.Fprintf(w, "  (short term: premiums shown are annualized for comparison)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(report.Blocks) > 0 {
		fmt.Fprintln(w, "DATE BLOCKS")
		for _, b := range report.Blocks {
			date := "TBD"
			if b.EffectiveDate != nil {
				date = b.EffectiveDate.String()
			}
			origin := "inherited"
			if b.IsExplicit {
				origin = "explicit"
			}
			fmt.Fprintf(w, "  layers %d-%d  effective %s (%s)\n", b.Start, b.End-1, date, origin)
		}
		fmt.Fprintln(w)
	}

	if len(report.Sublimits) > 0 {
		fmt.Fprintln(w, "SUB-COVERAGES")
		fmt.Fprintf(w, "%-30s %-12s %14s %14s\n", "Coverage", "Treatment", "Our Limit", "Our Attach")
		for _, s := range report.Sublimits {
			fmt.Fprintf(w, "%-30s %-12s %14s %14s\n",
				s.Coverage, s.Treatment,
				formatOptionalCurrency(s.Limit), formatOptionalCurrency(s.Attachment))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// GenerateJSONReport renders the report as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(report *domain.ProgramReport) error {
	data, err := gojson.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(rg.Out, string(data))
	return err
}

// FormatCurrency formats a money amount for display.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as a percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

func formatOptionalCurrency(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return FormatCurrency(*amount)
}

func formatOptionalFactor(f *decimal.Decimal) string {
	if f == nil {
		return "-"
	}
	return f.Round(4).String()
}
