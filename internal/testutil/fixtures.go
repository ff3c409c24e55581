package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"debtfreepro/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestDebt creates a credit card debt with sensible defaults.
func CreateTestDebt(t *testing.T, db *gorm.DB) *models.Debt {
	t.Helper()
	return CreateTestDebtWithBalance(t, db, 1000, 25, 19.99)
}

// CreateTestDebtWithBalance creates a credit card debt with the given
// balance, minimum payment, and annual interest rate.
func CreateTestDebtWithBalance(t *testing.T, db *gorm.DB, balance, minimumPayment, rate float64) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		Name:           fmt.Sprintf("Test Debt %d", nextID()),
		Category:       models.DebtCategoryCreditCard,
		Balance:        balance,
		MinimumPayment: minimumPayment,
		InterestRate:   rate,
		Institution:    "Test Bank",
		LastUpdated:    time.Now(),
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestStatement creates a statement linked to the given debt, with
// one purchase and one payment entry.
func CreateTestStatement(t *testing.T, db *gorm.DB, debtID string, balance float64) *models.Statement {
	t.Helper()

	statement := &models.Statement{
		DebtID:         debtID,
		StatementDate:  time.Now().AddDate(0, 0, -7),
		Balance:        balance,
		MinimumPayment: 25,
		FileName:       fmt.Sprintf("statement-%d.csv", nextID()),
		ImportedAt:     time.Now(),
		Entries: []models.StatementEntry{
			{
				Kind:        models.EntryKindPurchase,
				Date:        time.Now().AddDate(0, 0, -10),
				Amount:      50,
				Description: "Coffee Shop",
				Category:    models.PurchaseCategoryFood,
			},
			{
				Kind:        models.EntryKindPayment,
				Date:        time.Now().AddDate(0, 0, -9),
				Amount:      100,
				Description: "Payment Thank You",
			},
		},
	}
	if err := db.Create(statement).Error; err != nil {
		t.Fatalf("failed to create test statement: %v", err)
	}
	return statement
}

// CreateTestDocument writes content to a temp file and records it as an
// uploaded document of the given type.
func CreateTestDocument(t *testing.T, db *gorm.DB, docType models.DocumentType, content string) *models.Document {
	t.Helper()

	name := fmt.Sprintf("upload-%d.%s", nextID(), docType)
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test document file: %v", err)
	}

	doc := &models.Document{
		FileName:   name,
		FilePath:   path,
		Type:       docType,
		Size:       int64(len(content)),
		UploadedAt: time.Now(),
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}
