package services

import (
	"testing"

	"debtfreepro/internal/models"
	"debtfreepro/internal/testutil"
)

func TestGetSettings(t *testing.T) {
	t.Run("creates_defaults_on_first_read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		if settings.Strategy != models.StrategyTypeSnowball {
			t.Errorf("expected default strategy snowball, got %s", settings.Strategy)
		}
		if settings.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", settings.Currency)
		}
		if settings.ExtraPayment != 0 {
			t.Errorf("expected default extra payment 0, got %v", settings.ExtraPayment)
		}

		// A second read returns the same row.
		again, err := svc.GetSettings()
		testutil.AssertNoError(t, err)
		if again.ID != settings.ID {
			t.Error("expected the settings singleton, got a new row")
		}

		var count int64
		db.Model(&models.Settings{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 settings row, got %d", count)
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		extra := 150.0
		settings, err := svc.UpdateSettings(SettingsUpdate{ExtraPayment: &extra})
		testutil.AssertNoError(t, err)

		if settings.ExtraPayment != 150 {
			t.Errorf("expected extra payment 150, got %v", settings.ExtraPayment)
		}
		if settings.Strategy != models.StrategyTypeSnowball {
			t.Errorf("strategy should be untouched, got %s", settings.Strategy)
		}
	})

	t.Run("negative_extra_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		extra := -10.0
		_, err := svc.UpdateSettings(SettingsUpdate{ExtraPayment: &extra})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_strategy_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		strategy := models.StrategyType("yolo")
		_, err := svc.UpdateSettings(SettingsUpdate{Strategy: &strategy})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
