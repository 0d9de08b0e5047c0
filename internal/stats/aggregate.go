package stats

import (
	"sort"

	"expenshare/internal/models"
)

// UncategorizedLabel groups transactions with a missing or dangling category
// reference in flat rollups. They are excluded from the hierarchy view since
// they attach to no node.
const UncategorizedLabel = "uncategorized"

// MonthWindow is the number of distinct month keys kept in month series.
const MonthWindow = 6

// CategoryTotal is one entry of a flat category rollup.
type CategoryTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// MonthTotal is one entry of a month rollup, keyed "YYYY-MM".
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Partition splits transactions into expenses and budgets.
func Partition(transactions []models.Transaction) (expenses, budgets []models.Transaction) {
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeExpense:
			expenses = append(expenses, tx)
		case models.TransactionTypeBudget:
			budgets = append(budgets, tx)
		}
	}
	return expenses, budgets
}

// SumAmounts sums converted amounts.
func SumAmounts(transactions []models.Transaction, currency models.Currency, rates Rates) float64 {
	var total float64
	for _, tx := range transactions {
		total += Convert(tx.Amount, currency, rates)
	}
	return total
}

// RollupByCategory sums converted amounts per display label. The label is
// "Parent/Child" when the category has a parent, the category name otherwise,
// and the uncategorized sentinel for missing or dangling references.
func RollupByCategory(transactions []models.Transaction, categories []models.Category, currency models.Currency, rates Rates) []CategoryTotal {
	byID := make(map[string]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	sums := make(map[string]float64)
	for _, tx := range transactions {
		sums[categoryLabel(tx, byID)] += Convert(tx.Amount, currency, rates)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for label, total := range sums {
		totals = append(totals, CategoryTotal{Label: label, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Label < totals[j].Label })
	return totals
}

func categoryLabel(tx models.Transaction, byID map[string]models.Category) string {
	if tx.CategoryID == nil || *tx.CategoryID == "" {
		return UncategorizedLabel
	}
	cat, ok := byID[*tx.CategoryID]
	if !ok {
		return UncategorizedLabel
	}
	if cat.ParentID != nil {
		if parent, ok := byID[*cat.ParentID]; ok {
			return parent.Name + "/" + cat.Name
		}
	}
	return cat.Name
}

// RollupByMonth sums converted amounts per "YYYY-MM" key derived from the
// transaction's creation date.
func RollupByMonth(transactions []models.Transaction, currency models.Currency, rates Rates) map[string]float64 {
	sums := make(map[string]float64)
	for _, tx := range transactions {
		sums[tx.CreatedAt.Format("2006-01")] += Convert(tx.Amount, currency, rates)
	}
	return sums
}

// RecentMonths returns the most recent n distinct month keys present across
// both series, sorted ascending.
func RecentMonths(expenses, budgets map[string]float64, n int) []string {
	seen := make(map[string]bool, len(expenses)+len(budgets))
	for key := range expenses {
		seen[key] = true
	}
	for key := range budgets {
		seen[key] = true
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	return keys
}

// MonthSeries projects a month rollup onto an ordered key window. Months in
// the window without transactions appear with a zero total.
func MonthSeries(sums map[string]float64, months []string) []MonthTotal {
	series := make([]MonthTotal, 0, len(months))
	for _, month := range months {
		series = append(series, MonthTotal{Month: month, Total: sums[month]})
	}
	return series
}

// RollupForest fills in each node's rolled-up value: the converted sum of its
// own transactions plus the rollups of its children. Nodes whose rollup is not
// strictly positive are pruned from the result. The input forest must come
// from BuildForest, which guarantees it is acyclic and depth-bounded.
func RollupForest(forest []*Node, transactions []models.Transaction, currency models.Currency, rates Rates) []*Node {
	own := make(map[string]float64)
	for _, tx := range transactions {
		if tx.CategoryID != nil && *tx.CategoryID != "" {
			own[*tx.CategoryID] += Convert(tx.Amount, currency, rates)
		}
	}

	var roll func(node *Node) float64
	roll = func(node *Node) float64 {
		total := own[node.ID]
		kept := node.Children[:0]
		for _, child := range node.Children {
			childTotal := roll(child)
			total += childTotal
			if childTotal > 0 {
				kept = append(kept, child)
			}
		}
		node.Children = kept
		node.Value = total
		return total
	}

	result := make([]*Node, 0, len(forest))
	for _, root := range forest {
		if roll(root) > 0 {
			result = append(result, root)
		}
	}
	return result
}
