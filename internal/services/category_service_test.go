package services

import (
	"testing"

	"expenshare/internal/models"
	"expenshare/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("root_and_nested_levels", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		root, err := svc.CreateCategory(user.ID, project.ID, "Materials", nil)
		testutil.AssertNoError(t, err)
		if root.Level != 1 {
			t.Errorf("expected root level 1, got %d", root.Level)
		}

		child, err := svc.CreateCategory(user.ID, project.ID, "Tiles", &root.ID)
		testutil.AssertNoError(t, err)
		if child.Level != 2 {
			t.Errorf("expected child level 2, got %d", child.Level)
		}

		grandchild, err := svc.CreateCategory(user.ID, project.ID, "Ceramic", &child.ID)
		testutil.AssertNoError(t, err)
		if grandchild.Level != 3 {
			t.Errorf("expected grandchild level 3, got %d", grandchild.Level)
		}
	})

	t.Run("depth_cap", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		root := testutil.CreateTestCategory(t, db, project.ID)
		child := testutil.CreateTestCategoryWithParent(t, db, project.ID, root)
		leaf := testutil.CreateTestCategoryWithParent(t, db, project.ID, child)

		_, err := svc.CreateCategory(user.ID, project.ID, "Too Deep", &leaf.ID)
		testutil.AssertAppError(t, err, "MAX_DEPTH_EXCEEDED")
	})

	t.Run("duplicate_name_same_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		root, err := svc.CreateCategory(user.ID, project.ID, "Food", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, project.ID, "Food", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		// Same name under a different parent is allowed.
		_, err = svc.CreateCategory(user.ID, project.ID, "Food", &root.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("parent_from_other_project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		other := testutil.CreateTestProject(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other.ID)

		_, err := svc.CreateCategory(user.ID, project.ID, "Orphan", &foreign.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("viewer_cannot_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		owner := testutil.CreateTestUser(t, db)
		viewer := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, owner.ID)
		testutil.AddTestMember(t, db, project.ID, viewer.ID, models.RoleViewer)

		_, err := svc.CreateCategory(viewer.ID, project.ID, "Nope", nil)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestUpdateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	projects := NewProjectService(db)
	svc := NewCategoryService(db, projects)
	user := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)
	category := testutil.CreateTestCategory(t, db, project.ID)

	renamed, err := svc.UpdateCategory(user.ID, category.ID, "Renamed")
	testutil.AssertNoError(t, err)
	if renamed.Name != "Renamed" {
		t.Errorf("expected renamed category, got %s", renamed.Name)
	}

	_, err = svc.UpdateCategory(user.ID, category.ID, "  ")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteCategory(t *testing.T) {
	t.Run("with_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		root := testutil.CreateTestCategory(t, db, project.ID)
		testutil.CreateTestCategoryWithParent(t, db, project.ID, root)

		err := svc.DeleteCategory(user.ID, root.ID)
		testutil.AssertAppError(t, err, "CATEGORY_HAS_CHILDREN")
	})

	t.Run("leaf_with_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewCategoryService(db, projects)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, project.ID)
		tx := testutil.CreateTestTransactionInCategory(t, db, project.ID, user.ID, &category.ID, models.TransactionTypeExpense, 12)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		// The transaction survives; aggregation treats it as uncategorized.
		var reloaded models.Transaction
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", tx.ID).Error)

		_, err = svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
