package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/extractor"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/parser"
)

// TextExtractor recovers text from a statement file on disk. The PDF
// implementation returns extractor.ErrManualEntry when nothing readable
// comes back.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// documentService handles document upload and validation.
type documentService struct {
	db         *gorm.DB
	extractor  TextExtractor
	maxPDFSize int64
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB, ex TextExtractor, maxPDFSize int64) DocumentServicer {
	return &documentService{db: db, extractor: ex, maxPDFSize: maxPDFSize}
}

// UploadDocument records an uploaded file. The caller (upload handler)
// has already written the file to disk.
func (s *documentService) UploadDocument(fileName, filePath string, docType models.DocumentType, size int64, debtID *string) (*models.Document, error) {
	if docType != models.DocumentTypeCSV && docType != models.DocumentTypePDF {
		return nil, apperrors.ErrUnsupportedFileType
	}
	doc := &models.Document{
		FileName:   fileName,
		FilePath:   filePath,
		Type:       docType,
		Size:       size,
		DebtID:     debtID,
		UploadedAt: time.Now(),
	}
	if err := s.db.Create(doc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, nil
}

// GetDocuments returns a paginated list of uploaded documents.
func (s *documentService) GetDocuments(page pagination.PageRequest) (*pagination.PageResponse[models.Document], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Document{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var docs []models.Document
	if err := s.db.Model(&models.Document{}).Order("uploaded_at desc").
		Scopes(pagination.Paginate(page)).Find(&docs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(docs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDocumentByID returns a document by ID.
func (s *documentService) GetDocumentByID(id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrDocumentNotFound, "Document with ID %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &doc, nil
}

// ValidateDocument inspects a document's declared type, size, and raw
// content and decides admit/reject. Rules short-circuit on the first
// structural failure; row-level problems accumulate as warnings.
func (s *documentService) ValidateDocument(doc *models.Document) *ValidationResult {
	result := &ValidationResult{DetectedType: models.DetectedUnknown}

	if doc == nil || doc.Type == "" {
		result.Errors = append(result.Errors, "Document or file type is missing")
		return result
	}

	switch doc.Type {
	case models.DocumentTypeCSV:
		s.validateCSV(doc, result)
	case models.DocumentTypePDF:
		s.validatePDF(doc, result)
	default:
		result.Errors = append(result.Errors, "Unsupported file type")
		return result
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func (s *documentService) validateCSV(doc *models.Document, result *ValidationResult) {
	content, err := os.ReadFile(doc.FilePath)
	if err != nil {
		result.Errors = append(result.Errors, "Could not read CSV file")
		return
	}
	text := string(content)

	if strings.TrimSpace(text) == "" {
		result.Errors = append(result.Errors, "CSV file is empty")
		return
	}
	if countNonBlankLines(text) < 2 {
		result.Errors = append(result.Errors, "CSV must contain at least a header row and one data row")
		return
	}

	parsed, err := parser.ParseCSV(text)
	if err != nil {
		if errors.Is(err, parser.ErrHeadersNotRecognized) {
			result.Errors = append(result.Errors, "CSV headers not recognized")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("CSV could not be parsed: %v", err))
		}
		return
	}

	total := len(parsed.Purchases) + len(parsed.Payments)
	if total == 0 {
		result.Errors = append(result.Errors, "No valid data rows found")
		return
	}
	if bad := len(parsed.Diagnostics); bad > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d row(s) could not be parsed and were skipped", bad))
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("Parsed %d transactions", total))
	result.TransactionCount = total
	result.DetectedType = parser.DetectDocumentCategory(text)
}

func (s *documentService) validatePDF(doc *models.Document, result *ValidationResult) {
	if doc.Size == 0 {
		result.Errors = append(result.Errors, "PDF file appears to be empty")
		return
	}
	if doc.Size > s.maxPDFSize {
		result.Errors = append(result.Errors, "PDF file is too large (max 10MB)")
		return
	}
	if strings.TrimSpace(doc.FilePath) == "" {
		result.Errors = append(result.Errors, "PDF file path is missing")
		return
	}

	text, err := s.extractor.ExtractText(doc.FilePath)
	if err != nil {
		if extractor.IsManualEntry(err) {
			result.Warnings = append(result.Warnings,
				"PDF text extraction unavailable; manual entry required")
			return
		}
		result.Errors = append(result.Errors, "Could not read PDF file")
		return
	}

	fields := parser.ExtractFields(text)
	if !fields.HasData() {
		result.Warnings = append(result.Warnings, "No statement data recognized in PDF")
		result.DetectedType = parser.DetectDocumentCategory(text)
		return
	}

	result.Errors = append(result.Errors, sanityCheckFields(fields)...)
	result.DetectedType = parser.DetectDocumentCategory(text)
}

// sanityCheckFields rejects extracted values that cannot describe a
// real statement.
func sanityCheckFields(fields *parser.StatementFields) []string {
	var errs []string
	if fields.PreviousBalance != nil && *fields.PreviousBalance < 0 {
		errs = append(errs, "Previous balance must not be negative")
	}
	if fields.Purchases != nil && *fields.Purchases < 0 {
		errs = append(errs, "Purchases total must not be negative")
	}
	if fields.InterestCharged != nil && *fields.InterestCharged < 0 {
		errs = append(errs, "Interest charged must not be negative")
	}
	if fields.MinimumPayment != nil && *fields.MinimumPayment < 0 {
		errs = append(errs, "Minimum payment must not be negative")
	}
	if fields.InterestRate != nil && (*fields.InterestRate < 0 || *fields.InterestRate > 100) {
		errs = append(errs, "Interest rate must be between 0 and 100")
	}
	return errs
}

// SummarizeValidation renders a one-line human-readable summary of a
// validation result.
func (s *documentService) SummarizeValidation(result *ValidationResult) string {
	var b strings.Builder
	if result.IsValid {
		b.WriteString("✅ Valid document")
	} else {
		b.WriteString("❌ Invalid document")
	}
	if result.DetectedType != "" && result.DetectedType != models.DetectedUnknown {
		b.WriteString(fmt.Sprintf(" (%s)", result.DetectedType))
	}
	b.WriteString(fmt.Sprintf(" — %d error(s), %d warning(s)", len(result.Errors), len(result.Warnings)))
	return b.String()
}

// SummarizeDocument renders a one-line summary of a processed document.
func (s *documentService) SummarizeDocument(doc *models.Document, result *ValidationResult) string {
	status := "❌"
	if result.IsValid {
		status = "✅"
	}
	return fmt.Sprintf("%s %s (%s, %d bytes) — %d transaction(s), detected %s",
		status, doc.FileName, doc.Type, doc.Size, result.TransactionCount, result.DetectedType)
}

func countNonBlankLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
