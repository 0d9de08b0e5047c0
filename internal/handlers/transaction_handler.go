package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/pagination"
	"expenshare/internal/services"
)

// TransactionHandler handles transaction and note requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	Type        string  `json:"type" binding:"required,transaction_type"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=1000"`
}

// ListTransactionsQuery represents the query parameters for listing transactions
type ListTransactionsQuery struct {
	pagination.PageRequest
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// AddNoteRequest represents the request payload for attaching a note
type AddNoteRequest struct {
	ContentType string `json:"content_type" binding:"omitempty,note_content_type"`
	Content     string `json:"content" binding:"required,max=5000"`
	FilePath    string `json:"file_path" binding:"max=500"`
}

// CreateTransaction records a new expense or budget entry
// @Summary     Create a transaction
// @Description Record an expense or budget entry in a project
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID, c.Param("id"), req.CategoryID,
		models.TransactionType(req.Type), req.Amount, req.Title, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetProjectTransactions lists a project's transactions
// @Summary     List transactions
// @Description List a project's transactions, filtered and paginated, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Param       type query string false "Filter by type (expense/budget)"
// @Param       category_id query string false "Filter by category"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id}/transactions [get]
func (h *TransactionHandler) GetProjectTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{}
	if query.From != "" {
		from, _ := time.Parse("2006-01-02", query.From)
		filter.FromDate = &from
	}
	if query.To != "" {
		// Inclusive upper bound: the whole day.
		to, _ := time.Parse("2006-01-02", query.To)
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &to
	}
	if query.Type != "" {
		txType := models.TransactionType(query.Type)
		filter.Type = &txType
	}
	if query.CategoryID != "" {
		filter.CategoryID = &query.CategoryID
	}

	result, err := h.transactionService.GetProjectTransactions(userID, c.Param("id"), query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a single transaction with its notes
// @Summary     Get transaction
// @Description Get a transaction by ID, including its notes
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction
// @Summary     Delete transaction
// @Description Delete a transaction and its notes (author or project owner only)
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// AddNote attaches a note to a transaction
// @Summary     Add note
// @Description Attach a text, image, or audio note to a transaction
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body AddNoteRequest true "Note details"
// @Success     201 {object} models.Note "Note created"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /transactions/{id}/notes [post]
func (h *TransactionHandler) AddNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.transactionService.AddNote(
		userID, c.Param("id"), models.NoteContentType(req.ContentType), req.Content, req.FilePath)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GetNotes lists a transaction's notes
// @Summary     List notes
// @Description List all notes attached to a transaction
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {array} models.Note "Notes"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/notes [get]
func (h *TransactionHandler) GetNotes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notes, err := h.transactionService.GetNotes(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote removes a note
// @Summary     Delete note
// @Description Delete a note from a transaction
// @Tags        notes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     404 {object} ErrorResponse "Note not found"
// @Router      /notes/{id} [delete]
func (h *TransactionHandler) DeleteNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteNote(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
