package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/pagination"
)

// transactionService handles transaction and note business logic.
type transactionService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, projects ProjectServicer) TransactionServicer {
	return &transactionService{db: db, projects: projects}
}

// CreateTransaction records an expense or budget entry. The amount is the
// EUR-canonical value and must be strictly positive. A category, when given,
// must belong to the same project; non-leaf categories are accepted.
func (s *transactionService) CreateTransaction(
	userID, projectID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount float64,
	title, description string,
) (*models.Transaction, error) {
	if err := s.projects.Authorize(userID, projectID, true); err != nil {
		return nil, err
	}

	switch transactionType {
	case models.TransactionTypeExpense, models.TransactionTypeBudget:
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	if categoryID != nil && *categoryID != "" {
		var category models.Category
		if err := s.db.Where("id = ? AND project_id = ?", *categoryID, projectID).
			First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else {
		categoryID = nil
	}

	transaction := &models.Transaction{
		ProjectID:   projectID,
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetProjectTransactions returns a filtered, paginated transaction list,
// newest first.
func (s *transactionService) GetProjectTransactions(userID, projectID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if err := s.projects.Authorize(userID, projectID, false); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("project_id = ?", projectID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Preload("Category.Parent").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("created_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("created_at <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// GetTransactionByID retrieves a transaction the caller may read.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Preload("Notes").
		Where("id = ?", transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.projects.Authorize(userID, transaction.ProjectID, false); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction and its notes. Only the author or
// the project owner may delete; transactions are otherwise immutable.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if transaction.UserID != userID {
		project, err := s.projects.GetProjectByID(userID, transaction.ProjectID)
		if err != nil {
			return err
		}
		if project.CreatedBy != userID {
			return apperrors.ErrForbidden
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", transactionID).
			Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(transaction).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddNote attaches a text or media note to a transaction.
func (s *transactionService) AddNote(userID, transactionID string, contentType models.NoteContentType, content, filePath string) (*models.Note, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Authorize(userID, transaction.ProjectID, true); err != nil {
		return nil, err
	}

	switch contentType {
	case models.NoteContentText, models.NoteContentImage, models.NoteContentAudio:
	case "":
		contentType = models.NoteContentText
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported note content type")
	}
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "note content is required")
	}

	note := &models.Note{
		TransactionID: transactionID,
		ContentType:   contentType,
		Content:       content,
		FilePath:      filePath,
	}
	if err := s.db.Create(note).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return note, nil
}

// GetNotes returns all notes attached to a transaction.
func (s *transactionService) GetNotes(userID, transactionID string) ([]models.Note, error) {
	if _, err := s.GetTransactionByID(userID, transactionID); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err := s.db.Where("transaction_id = ?", transactionID).
		Order("created_at").
		Find(&notes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notes, nil
}

// DeleteNote removes a note from a transaction.
func (s *transactionService) DeleteNote(userID, noteID string) error {
	var note models.Note
	if err := s.db.Where("id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction, err := s.GetTransactionByID(userID, note.TransactionID)
	if err != nil {
		return err
	}
	if err := s.projects.Authorize(userID, transaction.ProjectID, true); err != nil {
		return err
	}

	if err := s.db.Delete(&note).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
