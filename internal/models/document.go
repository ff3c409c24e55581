package models

import "time"

// DocumentType is the declared type of an uploaded file.
type DocumentType string

const (
	DocumentTypeCSV DocumentType = "csv"
	DocumentTypePDF DocumentType = "pdf"
)

// DetectedCategory is a best-effort classification of statement content.
type DetectedCategory string

const (
	DetectedCreditCard   DetectedCategory = "credit_card"
	DetectedLineOfCredit DetectedCategory = "line_of_credit"
	DetectedLoan         DetectedCategory = "loan"
	DetectedUnknown      DetectedCategory = "unknown"
)

// Document is an uploaded statement file awaiting or finished processing.
type Document struct {
	Base
	FileName   string       `gorm:"not null" json:"file_name"`
	FilePath   string       `json:"file_path"`
	Type       DocumentType `gorm:"not null" json:"type"`
	Size       int64        `gorm:"not null;default:0" json:"size"`
	DebtID     *string      `json:"debt_id,omitempty"`
	Processed  bool         `gorm:"not null;default:false" json:"processed"`
	UploadedAt time.Time    `gorm:"not null" json:"uploaded_at"`
}
