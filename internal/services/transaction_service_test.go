package services

import (
	"testing"

	"expenshare/internal/models"
	"expenshare/internal/pagination"
	"expenshare/internal/testutil"
)

func TestCreateProjectTransaction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		tx, err := svc.CreateTransaction(user.ID, project.ID, nil, models.TransactionTypeExpense, 42.5, "Paint", "two buckets")
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Amount != 42.5 {
			t.Errorf("expected amount 42.5, got %f", tx.Amount)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		_, err := svc.CreateTransaction(user.ID, project.ID, nil, models.TransactionType("income"), 10, "X", "")
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		_, err := svc.CreateTransaction(user.ID, project.ID, nil, models.TransactionTypeExpense, 0, "X", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateTransaction(user.ID, project.ID, nil, models.TransactionTypeExpense, -5, "X", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		_, err := svc.CreateTransaction(user.ID, project.ID, nil, models.TransactionTypeBudget, 10, "  ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("category_from_other_project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		other := testutil.CreateTestProject(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other.ID)

		_, err := svc.CreateTransaction(user.ID, project.ID, &foreign.ID, models.TransactionTypeExpense, 10, "X", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("viewer_cannot_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		owner := testutil.CreateTestUser(t, db)
		viewer := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, owner.ID)
		testutil.AddTestMember(t, db, project.ID, viewer.ID, models.RoleViewer)

		_, err := svc.CreateTransaction(viewer.ID, project.ID, nil, models.TransactionTypeExpense, 10, "X", "")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestGetProjectTransactions(t *testing.T) {
	t.Run("filters_by_type_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, project.ID)

		testutil.CreateTestTransactionInCategory(t, db, project.ID, user.ID, &category.ID, models.TransactionTypeExpense, 10)
		testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 20)
		testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeBudget, 100)

		expense := models.TransactionTypeExpense
		page := pagination.PageRequest{Page: 1, PageSize: 10}

		result, err := svc.GetProjectTransactions(user.ID, project.ID, page, TransactionFilter{Type: &expense})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 expenses, got %d", result.TotalItems)
		}

		result, err = svc.GetProjectTransactions(user.ID, project.ID, page, TransactionFilter{CategoryID: &category.ID})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 categorized transaction, got %d", result.TotalItems)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		for i := 0; i < 5; i++ {
			testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 1)
		}

		result, err := svc.GetProjectTransactions(user.ID, project.ID, pagination.PageRequest{Page: 2, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", result.TotalPages)
		}
	})

	t.Run("outsider_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		owner := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, owner.ID)

		_, err := svc.GetProjectTransactions(outsider.ID, project.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestDeleteProjectTransaction(t *testing.T) {
	t.Run("author_deletes_with_notes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 10)
		testutil.CreateTestNote(t, db, tx.ID)

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		_, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		var liveNotes int64
		db.Model(&models.Note{}).Where("transaction_id = ?", tx.ID).Count(&liveNotes)
		if liveNotes != 0 {
			t.Errorf("expected notes deleted with transaction, got %d", liveNotes)
		}
	})

	t.Run("owner_deletes_members_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, owner.ID)
		testutil.AddTestMember(t, db, project.ID, member.ID, models.RoleMember)
		tx := testutil.CreateTestTransaction(t, db, project.ID, member.ID, models.TransactionTypeExpense, 10)

		testutil.AssertNoError(t, svc.DeleteTransaction(owner.ID, tx.ID))
	})

	t.Run("member_cannot_delete_others", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, owner.ID)
		testutil.AddTestMember(t, db, project.ID, member.ID, models.RoleMember)
		tx := testutil.CreateTestTransaction(t, db, project.ID, owner.ID, models.TransactionTypeExpense, 10)

		err := svc.DeleteTransaction(member.ID, tx.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestNotes(t *testing.T) {
	t.Run("add_and_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 10)

		note, err := svc.AddNote(user.ID, tx.ID, "", "remember the receipt", "")
		testutil.AssertNoError(t, err)
		if note.ContentType != models.NoteContentText {
			t.Errorf("expected default text content type, got %s", note.ContentType)
		}

		_, err = svc.AddNote(user.ID, tx.ID, models.NoteContentImage, "receipt scan", "uploads/receipt.png")
		testutil.AssertNoError(t, err)

		notes, err := svc.GetNotes(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if len(notes) != 2 {
			t.Errorf("expected 2 notes, got %d", len(notes))
		}
	})

	t.Run("empty_content", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 10)

		_, err := svc.AddNote(user.ID, tx.ID, models.NoteContentText, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("delete_note", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewTransactionService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, project.ID, user.ID, models.TransactionTypeExpense, 10)
		note := testutil.CreateTestNote(t, db, tx.ID)

		testutil.AssertNoError(t, svc.DeleteNote(user.ID, note.ID))
		testutil.AssertAppError(t, svc.DeleteNote(user.ID, note.ID), "NOTE_NOT_FOUND")
	})
}
