package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// CSVReport renders one row per layer, for spreadsheet import.
func CSVReport(report *domain.ProgramReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Index", "Carrier", "Limit", "QuotaShare", "Attachment",
		"TermStart", "TermEnd", "TermSource", "AnnualPremium", "ActualPremium",
		"TheoreticalProRata", "Variance", "ILF", "CumulativeILF"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Layers {
		record := []string{
			strconv.Itoa(row.Index),
			row.Carrier,
			row.Limit.StringFixed(2),
			optionalFixed(row.QuotaShare),
			row.Attachment.StringFixed(2),
			optionalDate(row.Term.Start),
			optionalDate(row.Term.End),
			string(row.Term.Source),
			optionalFixed(row.AnnualPremium),
			optionalFixed(row.ActualPremium),
			optionalFixed(row.TheoreticalProRata),
			row.Variance.StringFixed(2),
			optionalRounded(row.ILF),
			optionalRounded(row.CumulativeILF),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// GenerateCSVReport writes the CSV rendering to the generator's writer.
func (rg *ReportGenerator) GenerateCSVReport(report *domain.ProgramReport) error {
	data, err := CSVReport(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(rg.Out, string(data))
	return err
}

func optionalFixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func optionalRounded(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.Round(4).String()
}

func optionalDate(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
