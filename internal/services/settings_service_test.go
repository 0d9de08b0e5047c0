package services

import (
	"testing"

	"expenshare/internal/models"
	"expenshare/internal/testutil"
)

func TestSettingsGetSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)

	_, ok, err := svc.Get("missing")
	testutil.AssertNoError(t, err)
	if ok {
		t.Error("missing key should report absent")
	}

	testutil.AssertNoError(t, svc.Set("greeting", "hello"))
	value, ok, err := svc.Get("greeting")
	testutil.AssertNoError(t, err)
	if !ok || value != "hello" {
		t.Errorf("expected hello, got %q (present=%v)", value, ok)
	}

	// Set is an upsert.
	testutil.AssertNoError(t, svc.Set("greeting", "bonjour"))
	value, _, err = svc.Get("greeting")
	testutil.AssertNoError(t, err)
	if value != "bonjour" {
		t.Errorf("expected overwrite, got %q", value)
	}
}

func TestUserCurrency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)
	user := testutil.CreateTestUser(t, db)

	currency, err := svc.UserCurrency(user.ID)
	testutil.AssertNoError(t, err)
	if currency != models.CurrencyEUR {
		t.Errorf("expected EUR default, got %s", currency)
	}

	testutil.AssertNoError(t, svc.SetUserCurrency(user.ID, models.CurrencyCFA))
	currency, err = svc.UserCurrency(user.ID)
	testutil.AssertNoError(t, err)
	if currency != models.CurrencyCFA {
		t.Errorf("expected CFA, got %s", currency)
	}

	err = svc.SetUserCurrency(user.ID, models.Currency("GBP"))
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	// A malformed stored value falls back to EUR instead of failing.
	testutil.AssertNoError(t, svc.Set(models.UserCurrencyKey(user.ID), "garbage"))
	currency, err = svc.UserCurrency(user.ID)
	testutil.AssertNoError(t, err)
	if currency != models.CurrencyEUR {
		t.Errorf("expected EUR fallback, got %s", currency)
	}
}

func TestResolveRates(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		eurToCFA, eurToUSD, err := svc.ResolveRates("", "")
		testutil.AssertNoError(t, err)
		if eurToCFA != DefaultEURToCFA {
			t.Errorf("expected default CFA rate, got %f", eurToCFA)
		}
		if eurToUSD != DefaultEURToUSD {
			t.Errorf("expected default USD rate, got %f", eurToUSD)
		}
	})

	t.Run("project_overrides_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		userUSD := 1.05
		testutil.AssertNoError(t, svc.SetUserRates(user.ID, nil, &userUSD))

		eurToCFA, eurToUSD, err := svc.ResolveRates(project.ID, user.ID)
		testutil.AssertNoError(t, err)
		if eurToUSD != 1.05 {
			t.Errorf("expected user rate 1.05, got %f", eurToUSD)
		}
		if eurToCFA != DefaultEURToCFA {
			t.Errorf("unset CFA rate should stay default, got %f", eurToCFA)
		}

		projectUSD := 1.10
		testutil.AssertNoError(t, svc.SetProjectRates(project.ID, nil, &projectUSD))

		_, eurToUSD, err = svc.ResolveRates(project.ID, user.ID)
		testutil.AssertNoError(t, err)
		if eurToUSD != 1.10 {
			t.Errorf("project rate should win, got %f", eurToUSD)
		}

		// Without the project scope the user rate still applies.
		_, eurToUSD, err = svc.ResolveRates("", user.ID)
		testutil.AssertNoError(t, err)
		if eurToUSD != 1.05 {
			t.Errorf("expected user rate without project scope, got %f", eurToUSD)
		}
	})

	t.Run("malformed_rate_falls_through", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.Set(models.UserRateKey(user.ID, "usd"), "not-a-number"))

		_, eurToUSD, err := svc.ResolveRates("", user.ID)
		testutil.AssertNoError(t, err)
		if eurToUSD != DefaultEURToUSD {
			t.Errorf("expected default after malformed rate, got %f", eurToUSD)
		}
	})

	t.Run("rejects_non_positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		zero := 0.0
		err := svc.SetUserRates(user.ID, &zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAdminUserIDSetting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)

	id, err := svc.AdminUserID()
	testutil.AssertNoError(t, err)
	if id != "" {
		t.Errorf("expected empty before bootstrap, got %q", id)
	}

	testutil.AssertNoError(t, svc.SetAdminUserID("abc"))
	id, err = svc.AdminUserID()
	testutil.AssertNoError(t, err)
	if id != "abc" {
		t.Errorf("expected abc, got %q", id)
	}
}
