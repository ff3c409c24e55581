package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/services"
	"debtfreepro/internal/uuid"
)

// DocumentHandler handles document upload and validation requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
	uploadDir       string
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer, uploadDir string) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, uploadDir: uploadDir}
}

// UploadDocument handles a multipart statement upload. The file type is
// inferred from the extension; an optional debt_id form field associates
// the document with a debt up front.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No file provided"))
		return
	}

	docType, err := documentTypeFromName(file.Filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var debtID *string
	if v := c.PostForm("debt_id"); v != "" {
		debtID = &v
	}

	// Stored under a fresh name so repeated uploads of the same file
	// never collide.
	storedName := uuid.New() + "_" + filepath.Base(file.Filename)
	path := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, path); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	doc, err := h.documentService.UploadDocument(file.Filename, path, docType, file.Size, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// GetDocuments handles the paginated retrieval of uploaded documents.
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.documentService.GetDocuments(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDocumentByID handles the retrieval of a specific document.
func (h *DocumentHandler) GetDocumentByID(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// ValidateDocument runs the document validator and returns the result
// with a one-line summary. Validation never persists anything.
func (h *DocumentHandler) ValidateDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	result := h.documentService.ValidateDocument(doc)
	c.JSON(http.StatusOK, gin.H{
		"result":  result,
		"summary": h.documentService.SummarizeValidation(result),
	})
}

func documentTypeFromName(name string) (models.DocumentType, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return models.DocumentTypeCSV, nil
	case ".pdf":
		return models.DocumentTypePDF, nil
	}
	return "", apperrors.ErrUnsupportedFileType
}
