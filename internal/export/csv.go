// Package export renders project transactions into the external report
// formats: CSV and an XLSX summary workbook.
package export

import (
	"io"
	"strings"
	"time"

	"expenshare/internal/models"
	"expenshare/internal/stats"
)

// Row is one exported transaction line.
type Row struct {
	Type        string
	Title       string
	Category    string
	Subcategory string
	Amount      string
	Currency    string
	Project     string
	User        string
	Date        string
}

// typeLabels maps transaction types to their exported French labels.
var typeLabels = map[models.TransactionType]string{
	models.TransactionTypeExpense: "Dépense",
	models.TransactionTypeBudget:  "Budget",
}

// BuildRows converts transactions into export rows. Category and subcategory
// columns follow the hierarchy: a level-1 category fills Catégorie, a deeper
// one fills Sous-catégorie with its parent in Catégorie.
func BuildRows(
	transactions []models.Transaction,
	categories []models.Category,
	project *models.Project,
	userNames map[string]string,
	rates stats.Rates,
) []Row {
	byID := make(map[string]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		row := Row{
			Type:     typeLabels[tx.Type],
			Title:    tx.Title,
			Amount:   stats.Format(stats.Convert(tx.Amount, project.Currency, rates)),
			Currency: project.Currency.DisplayCode(),
			Project:  project.Name,
			User:     userNames[tx.UserID],
			Date:     tx.CreatedAt.Format(time.DateOnly),
		}
		if tx.CategoryID != nil {
			if cat, ok := byID[*tx.CategoryID]; ok {
				if cat.ParentID != nil {
					if parent, ok := byID[*cat.ParentID]; ok {
						row.Category = parent.Name
					}
					row.Subcategory = cat.Name
				} else {
					row.Category = cat.Name
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes rows in the export CSV format: every field quoted, CRLF
// line endings, French header row. The Devise column is optional.
func WriteCSV(w io.Writer, rows []Row, includeCurrency bool) error {
	header := []string{"Type", "Titre", "Catégorie", "Sous-catégorie", "Montant"}
	if includeCurrency {
		header = append(header, "Devise")
	}
	header = append(header, "Projet", "Utilisateur", "Date")

	if err := writeRecord(w, header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Type, row.Title, row.Category, row.Subcategory, row.Amount}
		if includeCurrency {
			record = append(record, row.Currency)
		}
		record = append(record, row.Project, row.User, row.Date)
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

// writeRecord emits one CSV line. encoding/csv only quotes when forced to,
// while the export format quotes every field, so quoting is done by hand.
func writeRecord(w io.Writer, fields []string) error {
	var sb strings.Builder
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteString("\r\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
