package export

import (
	"strings"
	"testing"
	"time"

	"expenshare/internal/models"
	"expenshare/internal/stats"
)

func testProject(currency models.Currency) *models.Project {
	project := &models.Project{Name: "Renovation", Currency: currency}
	project.ID = "project-1"
	return project
}

func testCategorySet() []models.Category {
	root := models.Category{Name: "Materials", Level: 1}
	root.ID = "materials"
	child := models.Category{Name: "Tiles", ParentID: &root.ID, Level: 2}
	child.ID = "tiles"
	return []models.Category{root, child}
}

func testTransaction(id string, txType models.TransactionType, amount float64, categoryID *string) models.Transaction {
	tx := models.Transaction{
		Type:       txType,
		Amount:     amount,
		Title:      "Floor " + id,
		UserID:     "user-1",
		CategoryID: categoryID,
	}
	tx.ID = id
	tx.CreatedAt = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	return tx
}

func TestBuildRows(t *testing.T) {
	categories := testCategorySet()
	tiles := "tiles"
	materials := "materials"

	rows := BuildRows(
		[]models.Transaction{
			testTransaction("t1", models.TransactionTypeExpense, 50, &tiles),
			testTransaction("t2", models.TransactionTypeBudget, 100, &materials),
			testTransaction("t3", models.TransactionTypeExpense, 10, nil),
		},
		categories,
		testProject(models.CurrencyUSD),
		map[string]string{"user-1": "alice"},
		stats.Rates{EURToCFA: 655.957, EURToUSD: 1.08},
	)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	sub := rows[0]
	if sub.Type != "Dépense" {
		t.Errorf("expected Dépense, got %s", sub.Type)
	}
	if sub.Category != "Materials" || sub.Subcategory != "Tiles" {
		t.Errorf("expected parent/child split, got %q / %q", sub.Category, sub.Subcategory)
	}
	if sub.Amount != "54.00" {
		t.Errorf("expected converted amount 54.00, got %s", sub.Amount)
	}
	if sub.Currency != "USD" {
		t.Errorf("expected USD, got %s", sub.Currency)
	}
	if sub.Date != "2024-03-15" {
		t.Errorf("expected ISO date, got %s", sub.Date)
	}
	if sub.User != "alice" {
		t.Errorf("expected resolved user name, got %s", sub.User)
	}

	root := rows[1]
	if root.Type != "Budget" || root.Category != "Materials" || root.Subcategory != "" {
		t.Errorf("unexpected root-category row %+v", root)
	}

	uncategorized := rows[2]
	if uncategorized.Category != "" || uncategorized.Subcategory != "" {
		t.Errorf("uncategorized row should have empty category columns, got %+v", uncategorized)
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{{
		Type:     "Dépense",
		Title:    `Tiles "premium"`,
		Category: "Materials",
		Amount:   "54.00",
		Currency: "USD",
		Project:  "Renovation",
		User:     "alice",
		Date:     "2024-03-15",
	}}

	var sb strings.Builder
	if err := WriteCSV(&sb, rows, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	lines := strings.Split(out, "\r\n")
	if len(lines) != 3 || lines[2] != "" {
		t.Fatalf("expected CRLF-terminated lines, got %q", out)
	}
	if lines[0] != `"Type","Titre","Catégorie","Sous-catégorie","Montant","Devise","Projet","Utilisateur","Date"` {
		t.Errorf("unexpected header: %s", lines[0])
	}

	// Every field is quoted and embedded quotes are doubled.
	if !strings.Contains(lines[1], `"Tiles ""premium"""`) {
		t.Errorf("expected doubled quotes in %s", lines[1])
	}
	if !strings.HasPrefix(lines[1], `"Dépense",`) {
		t.Errorf("expected quoted type field in %s", lines[1])
	}
}

func TestWriteCSVWithoutCurrency(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := strings.TrimSuffix(sb.String(), "\r\n")
	if strings.Contains(header, "Devise") {
		t.Errorf("Devise column should be omitted: %s", header)
	}
}
