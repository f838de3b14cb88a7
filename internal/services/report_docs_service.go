package services

import (
	"bytes"
	"fmt"
	"time"

	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

// BuildFinancialReportPDF renders the overview, status and expense-type tables.
func BuildFinancialReportPDF(r FinancialReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Relatorio Financeiro", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("RELATÓRIO FINANCEIRO"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Periodo : %s a %s", utils.Fallback(r.Period.StartDate, "inicio"), utils.Fallback(r.Period.EndDate, "hoje")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Gerado em : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(11)

	o := r.Overview
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Resumo")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	lines := [][2]string{
		{"Viagens", fmt.Sprintf("%d", o.TotalTrips)},
		{"Receita", utils.FormatReal(o.TotalRevenue)},
		{"Despesas", utils.FormatReal(o.TotalExpenses)},
		{"Lucro liquido", utils.FormatReal(o.NetProfit)},
		{"Margem", utils.FormatPercent(o.ProfitMargin)},
	}
	for _, l := range lines {
		pdf.CellFormat(60, 7, l[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, l[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Viagens por status")
	pdf.Ln(8)
	tableHeader(pdf, "Status", "Qtd", "Receita")
	for _, st := range r.TripsByStatus {
		tableRow(pdf, string(st.Status), fmt.Sprintf("%d", st.Count), utils.FormatReal(st.Revenue))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Despesas por tipo")
	pdf.Ln(8)
	tableHeader(pdf, "Tipo", "Qtd", "Total")
	for _, et := range r.ExpensesByType {
		tableRow(pdf, string(et.Type), fmt.Sprintf("%d", et.Count), utils.FormatReal(et.Total))
	}

	if len(r.Trips) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Viagens")
		pdf.Ln(8)
		tableHeader(pdf, "Saida", "Rota", "Valor")
		for _, t := range r.Trips {
			route := tr(utils.TruncateRunes(utils.NormalizeSpace(t.Origin+" - "+t.Destination), 32))
			tableRow(pdf, utils.FormatDate(t.DepartureDate), route, utils.FormatReal(t.Value()))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RELATORIO_FINANCEIRO_%s_%s.pdf", utils.SafeFilenamePart(r.Period.StartDate), utils.SafeFilenamePart(r.Period.EndDate))
	return buf.Bytes(), filename, nil
}

func tableHeader(pdf *gofpdf.Fpdf, cols ...string) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range cols {
		pdf.CellFormat(60, 7, c, "1", lastCol(i, len(cols)), "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
}

func tableRow(pdf *gofpdf.Fpdf, cols ...string) {
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(60, 7, c, "1", lastCol(i, len(cols)), align, false, 0, "")
	}
}

func lastCol(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}

var dimensionTitles = map[models.Dimension]string{
	models.DimensionVehicle: "Veiculo",
	models.DimensionDriver:  "Motorista",
	models.DimensionClient:  "Cliente",
}

// BuildAggregationXLSX writes a summary sheet (one row per group plus a
// totals row) and a detail sheet listing every trip of every group.
func BuildAggregationXLSX(d models.Dimension, period Period, groups []TripGroupSummary) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary, detail = "Resumo", "Viagens"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(detail); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return nil, "", err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, "", err
	}

	header := []any{dimensionTitles[d], "ID", "Viagens", "Receita", "Despesas", "Saldo"}
	if err := writeRow(f, summary, 1, header, headerStyle); err != nil {
		return nil, "", err
	}
	_ = f.SetColWidth(summary, "A", "B", 28)
	_ = f.SetColWidth(summary, "C", "F", 15)

	var trips int
	var value, expenses float64
	for i, g := range groups {
		row := []any{groupName(g), g.GroupID, g.TripCount, g.TotalValue, g.TotalExpenses, g.FinalValue}
		if err := writeRow(f, summary, i+2, row, 0); err != nil {
			return nil, "", err
		}
		trips += g.TripCount
		value += g.TotalValue
		expenses += g.TotalExpenses
	}
	totals := []any{"TOTAL", "", trips, value, expenses, value - expenses}
	if err := writeRow(f, summary, len(groups)+2, totals, totalStyle); err != nil {
		return nil, "", err
	}

	detailHeader := []any{dimensionTitles[d], "Saida", "Origem", "Destino", "Status", "Valor", "Despesas"}
	if err := writeRow(f, detail, 1, detailHeader, headerStyle); err != nil {
		return nil, "", err
	}
	_ = f.SetColWidth(detail, "A", "A", 28)
	_ = f.SetColWidth(detail, "B", "G", 18)

	line := 2
	for _, g := range groups {
		name := groupName(g)
		for _, t := range g.Trips {
			row := []any{name, utils.FormatDate(t.DepartureDate), t.Origin, t.Destination, string(t.Status), t.Value(), SumExpenseValues(t.Expenses)}
			if err := writeRow(f, detail, line, row, 0); err != nil {
				return nil, "", err
			}
			line++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("VIAGENS_POR_%s_%s_%s.xlsx", dimensionTitles[d], utils.SafeFilenamePart(period.StartDate), utils.SafeFilenamePart(period.EndDate))
	return buf.Bytes(), filename, nil
}

func groupName(g TripGroupSummary) string {
	if g.Entity == nil {
		return "(removido)"
	}
	return g.Entity.DisplayName()
}

// writeRow fills one sheet row starting at column A; style 0 leaves it unstyled.
func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
