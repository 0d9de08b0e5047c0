package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expenshare/internal/stats"
)

const reportSheet = "Rapport"

// WriteXLSX writes a project report workbook: summary cards at the top, then
// the per-category expense and budget breakdowns.
func WriteXLSX(w io.Writer, projectName string, projectStats *stats.ProjectStats) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	set := func(cell string, value interface{}) {
		if err == nil {
			err = f.SetCellValue(reportSheet, cell, value)
		}
	}

	set("A1", "Projet")
	set("B1", projectName)
	set("A2", "Devise")
	set("B2", projectStats.Currency)

	set("A4", "Total dépenses")
	set("B4", projectStats.TotalExpenses)
	set("A5", "Total budgets")
	set("B5", projectStats.TotalBudgets)
	set("A6", "Solde")
	set("B6", projectStats.Balance)

	row := 8
	set(fmt.Sprintf("A%d", row), "Dépenses par catégorie")
	row++
	for _, entry := range projectStats.ExpensesByCategory {
		set(fmt.Sprintf("A%d", row), entry.Label)
		set(fmt.Sprintf("B%d", row), entry.Total)
		row++
	}

	row++
	set(fmt.Sprintf("A%d", row), "Budgets par catégorie")
	row++
	for _, entry := range projectStats.BudgetsByCategory {
		set(fmt.Sprintf("A%d", row), entry.Label)
		set(fmt.Sprintf("B%d", row), entry.Total)
		row++
	}

	if err != nil {
		return fmt.Errorf("failed to fill report sheet: %w", err)
	}

	if err := f.SetColWidth(reportSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("failed to size report columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
