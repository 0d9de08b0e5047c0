// Package stats implements the aggregation engine: category tree building,
// transaction rollups by category and month, currency normalization, and the
// statistics facade consumed by the dashboard and export endpoints.
package stats

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/logger"
	"expenshare/internal/models"
)

// Authorizer grants or denies project access. Satisfied by the project service.
type Authorizer interface {
	Authorize(userID, projectID string, write bool) error
}

// Preferences resolves display currency and exchange rates. Satisfied by the
// settings service. Rates are read fresh on every aggregation call.
type Preferences interface {
	UserCurrency(userID string) (models.Currency, error)
	ResolveRates(projectID, userID string) (eurToCFA, eurToUSD float64, err error)
}

// GlobalStats aggregates across every project the user owns or is a member of.
type GlobalStats struct {
	TotalExpenses       float64      `json:"total_expenses"`
	TotalBudgets        float64      `json:"total_budgets"`
	Balance             float64      `json:"balance"`
	TransactionCount    int          `json:"transaction_count"`
	LastTransactionDate *time.Time   `json:"last_transaction_date,omitempty"`
	ProjectCount        int          `json:"project_count"`
	ExpensesByMonth     []MonthTotal `json:"expenses_by_month"`
	BudgetsByMonth      []MonthTotal `json:"budgets_by_month"`
	Currency            string       `json:"currency"`
}

// ProjectStats aggregates a single project.
type ProjectStats struct {
	TotalExpenses      float64              `json:"total_expenses"`
	TotalBudgets       float64              `json:"total_budgets"`
	Balance            float64              `json:"balance"`
	ExpensesByCategory []CategoryTotal      `json:"expenses_by_category"`
	BudgetsByCategory  []CategoryTotal      `json:"budgets_by_category"`
	Transactions       []models.Transaction `json:"transactions"`
	Currency           string               `json:"currency"`
}

// Service composes the tree builder, aggregator, and currency normalizer over
// the row store.
type Service struct {
	db       *gorm.DB
	projects Authorizer
	prefs    Preferences
}

// NewService creates a stats Service.
func NewService(db *gorm.DB, projects Authorizer, prefs Preferences) *Service {
	return &Service{db: db, projects: projects, prefs: prefs}
}

// GlobalStats aggregates all projects visible to the user. It fails soft: any
// read error is logged and a zero-valued stats object is returned so the
// dashboard never breaks.
func (s *Service) GlobalStats(userID string) *GlobalStats {
	currency := models.CurrencyEUR
	if c, err := s.prefs.UserCurrency(userID); err == nil {
		currency = c
	}
	result := zeroGlobalStats(currency)

	eurToCFA, eurToUSD, err := s.prefs.ResolveRates("", userID)
	if err != nil {
		logger.Get().Errorw("global stats: rate resolution failed", "user_id", userID, "error", err)
		return result
	}
	rates := Rates{EURToCFA: eurToCFA, EURToUSD: eurToUSD}

	memberOf := s.db.Model(&models.ProjectUser{}).
		Select("project_id").
		Where("user_id = ?", userID)
	var projectIDs []string
	if err := s.db.Model(&models.Project{}).
		Where("created_by = ? OR id IN (?)", userID, memberOf).
		Pluck("id", &projectIDs).Error; err != nil {
		logger.Get().Errorw("global stats: project scope query failed", "user_id", userID, "error", err)
		return result
	}
	result.ProjectCount = len(projectIDs)
	if len(projectIDs) == 0 {
		return result
	}

	var transactions []models.Transaction
	if err := s.db.Where("project_id IN (?)", projectIDs).
		Find(&transactions).Error; err != nil {
		logger.Get().Errorw("global stats: transaction query failed", "user_id", userID, "error", err)
		return result
	}

	expenses, budgets := Partition(transactions)
	result.TotalExpenses = SumAmounts(expenses, currency, rates)
	result.TotalBudgets = SumAmounts(budgets, currency, rates)
	result.Balance = result.TotalBudgets - result.TotalExpenses
	result.TransactionCount = len(transactions)

	for i := range transactions {
		if result.LastTransactionDate == nil || transactions[i].CreatedAt.After(*result.LastTransactionDate) {
			result.LastTransactionDate = &transactions[i].CreatedAt
		}
	}

	expensesByMonth := RollupByMonth(expenses, currency, rates)
	budgetsByMonth := RollupByMonth(budgets, currency, rates)
	window := RecentMonths(expensesByMonth, budgetsByMonth, MonthWindow)
	result.ExpensesByMonth = MonthSeries(expensesByMonth, window)
	result.BudgetsByMonth = MonthSeries(budgetsByMonth, window)

	return result
}

func zeroGlobalStats(currency models.Currency) *GlobalStats {
	return &GlobalStats{
		ExpensesByMonth: []MonthTotal{},
		BudgetsByMonth:  []MonthTotal{},
		Currency:        currency.DisplayCode(),
	}
}

// ProjectStats aggregates a single project in its display currency. Access is
// fail-closed with the typed FORBIDDEN error, so callers can tell denial from
// an empty project.
func (s *Service) ProjectStats(userID, projectID string) (*ProjectStats, error) {
	if err := s.projects.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}

	project, categories, transactions, rates, err := s.loadProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	currency := project.Currency

	expenses, budgets := Partition(transactions)
	result := &ProjectStats{
		TotalExpenses:      SumAmounts(expenses, currency, rates),
		TotalBudgets:       SumAmounts(budgets, currency, rates),
		ExpensesByCategory: RollupByCategory(expenses, categories, currency, rates),
		BudgetsByCategory:  RollupByCategory(budgets, categories, currency, rates),
		Transactions:       transactions,
		Currency:           currency.DisplayCode(),
	}
	result.Balance = result.TotalBudgets - result.TotalExpenses
	return result, nil
}

// ProjectCategoryHierarchy builds the rolled-up category forest for the
// drill-down view. A project without categories yields an empty forest, not
// an error. Transactions with no surviving category attach to no node and are
// therefore absent from this view.
func (s *Service) ProjectCategoryHierarchy(userID, projectID string, txType models.TransactionType) ([]*Node, error) {
	if err := s.projects.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}

	project, categories, transactions, rates, err := s.loadProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	forest, err := BuildForest(categories)
	if err != nil {
		return nil, err
	}

	var scoped []models.Transaction
	for _, tx := range transactions {
		if tx.Type == txType {
			scoped = append(scoped, tx)
		}
	}

	return RollupForest(forest, scoped, project.Currency, rates), nil
}

func (s *Service) loadProject(userID, projectID string) (*models.Project, []models.Category, []models.Transaction, Rates, error) {
	var project models.Project
	if err := s.db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, Rates{}, apperrors.ErrProjectNotFound
		}
		return nil, nil, nil, Rates{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Where("project_id = ?", projectID).Find(&categories).Error; err != nil {
		return nil, nil, nil, Rates{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, nil, nil, Rates{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	eurToCFA, eurToUSD, err := s.prefs.ResolveRates(projectID, userID)
	if err != nil {
		return nil, nil, nil, Rates{}, err
	}

	return &project, categories, transactions, Rates{EURToCFA: eurToCFA, EURToUSD: eurToUSD}, nil
}
