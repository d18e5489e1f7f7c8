package http

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/labelcheck/backend/internal/domain"
	"github.com/labelcheck/backend/internal/usecase"
)

// maxImageSize caps each uploaded label photo at 10MB
const maxImageSize = 10 * 1024 * 1024

// Handler holds dependencies for HTTP handlers
type Handler struct {
	verification *usecase.VerificationService
	extractor    domain.LabelExtractor
	cache        domain.CacheRepository
	cacheTTL     time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	verification *usecase.VerificationService,
	extractor domain.LabelExtractor,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
) *Handler {
	return &Handler{
		verification: verification,
		extractor:    extractor,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "labelcheck-backend",
		"version": "1.0.0",
	})
}

// VerifyLabel handles POST /api/v1/labels/verify. It accepts a multipart
// form carrying the applicant's declared claims plus one or two label
// photos, extracts the printed fields from the images, and returns a
// field-by-field comparison.
func (h *Handler) VerifyLabel(c *gin.Context) {
	declared, ok := h.parseDeclaredForm(c)
	if !ok {
		return
	}

	front, ok := h.requiredFormImage(c, "label_image")
	if !ok {
		return
	}

	extracted, err := h.extractCached(c, front)
	if err != nil {
		h.respondExtractionError(c, err)
		return
	}

	// The back label is optional; it usually carries the warning
	// statement and net contents when the front does not.
	back, present, ok := h.optionalFormImage(c, "back_image")
	if !ok {
		return
	}
	if present {
		backExtracted, err := h.extractCached(c, back)
		if err != nil {
			h.respondExtractionError(c, err)
			return
		}
		extracted.Merge(backExtracted)
	}

	outcome, err := h.verification.VerifyLabel(c.Request.Context(), declared, extracted)
	if err != nil {
		h.respondVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"requestId": uuid.New().String(),
			"match":     outcome.Success,
			"fields":    outcome.Fields,
		},
	})
}

// parseDeclaredForm reads and validates the declared claim fields from
// the multipart form. On failure it writes the error response and
// returns ok=false.
func (h *Handler) parseDeclaredForm(c *gin.Context) (*domain.DeclaredRecord, bool) {
	brandName := strings.TrimSpace(c.PostForm("brand_name"))
	if brandName == "" {
		respondError(c, http.StatusBadRequest, "MISSING_BRAND_NAME", "brand_name is required")
		return nil, false
	}

	category := strings.TrimSpace(c.PostForm("product_category"))
	if category == "" {
		respondError(c, http.StatusBadRequest, "MISSING_PRODUCT_CATEGORY", "product_category is required")
		return nil, false
	}

	abvStr := strings.TrimSpace(c.PostForm("alcohol_content"))
	if abvStr == "" {
		respondError(c, http.StatusBadRequest, "MISSING_ALCOHOL_CONTENT", "alcohol_content is required")
		return nil, false
	}
	abv, err := strconv.ParseFloat(abvStr, 64)
	if err != nil || math.IsNaN(abv) || math.IsInf(abv, 0) || abv < 0 || abv > 100 {
		respondError(c, http.StatusBadRequest, "INVALID_ALCOHOL_CONTENT",
			"alcohol_content must be a number between 0 and 100")
		return nil, false
	}

	netContents := strings.TrimSpace(c.PostForm("net_contents"))
	if netContents == "" {
		respondError(c, http.StatusBadRequest, "MISSING_NET_CONTENTS", "net_contents is required")
		return nil, false
	}

	return &domain.DeclaredRecord{
		BrandName:       brandName,
		ProductCategory: domain.Category(category),
		AlcoholContent:  abv,
		NetContents:     netContents,
	}, true
}

// labelImage is an uploaded photo read fully into memory
type labelImage struct {
	data     []byte
	mimeType string
}

// requiredFormImage reads the named file field. A missing or invalid
// file writes the error response and returns ok=false.
func (h *Handler) requiredFormImage(c *gin.Context, field string) (*labelImage, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_LABEL_IMAGE",
			fmt.Sprintf("%s file is required", field))
		return nil, false
	}
	return h.readImage(c, field, fileHeader)
}

// optionalFormImage reads the named file field if present. present
// reports whether the field carried a file; ok is false when a present
// file failed validation, in which case the response is already written.
func (h *Handler) optionalFormImage(c *gin.Context, field string) (img *labelImage, present, ok bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, false, true
	}
	img, ok = h.readImage(c, field, fileHeader)
	return img, true, ok
}

func (h *Handler) readImage(c *gin.Context, field string, fileHeader *multipart.FileHeader) (*labelImage, bool) {
	if fileHeader.Size > maxImageSize {
		respondError(c, http.StatusBadRequest, "IMAGE_TOO_LARGE",
			fmt.Sprintf("%s exceeds maximum of %d bytes", field, maxImageSize))
		return nil, false
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE_TYPE",
			fmt.Sprintf("%s must be an image (got %q)", field, mimeType))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "IMAGE_READ_ERROR", err.Error())
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "IMAGE_READ_ERROR", err.Error())
		return nil, false
	}
	if len(data) > maxImageSize {
		respondError(c, http.StatusBadRequest, "IMAGE_TOO_LARGE",
			fmt.Sprintf("%s exceeds maximum of %d bytes", field, maxImageSize))
		return nil, false
	}

	return &labelImage{data: data, mimeType: mimeType}, true
}

// extractCached runs vision extraction for one image, consulting the
// cache first. Identical image bytes always yield identical extraction
// results, so the content hash is a safe cache key.
func (h *Handler) extractCached(c *gin.Context, img *labelImage) (*domain.ExtractedRecord, error) {
	key := extractionCacheKey(img.data)

	if cached, err := h.cache.Get(c.Request.Context(), key); err == nil {
		if record, ok := decodeCachedRecord(cached); ok {
			return record, nil
		}
	}

	record, err := h.extractor.ExtractLabel(c.Request.Context(), img.data, img.mimeType)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(c.Request.Context(), key, record, h.cacheTTL); err != nil {
		log.Printf("[HANDLER] failed to cache extraction result: %v", err)
	}

	return record, nil
}

// extractionCacheKey derives the cache key from the image content hash
func extractionCacheKey(imageData []byte) string {
	sum := md5.Sum(imageData)
	return "extract:" + hex.EncodeToString(sum[:])
}

// decodeCachedRecord converts a cached value back into an extracted
// record. The cache stores values JSON-decoded, so a round-trip through
// json recovers the typed struct.
func decodeCachedRecord(cached interface{}) (*domain.ExtractedRecord, bool) {
	raw, err := json.Marshal(cached)
	if err != nil {
		return nil, false
	}
	var record domain.ExtractedRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false
	}
	return &record, true
}

// respondExtractionError maps extraction failures onto HTTP responses
func (h *Handler) respondExtractionError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrExtractionFailed) {
		respondError(c, http.StatusBadGateway, "EXTRACTION_FAILED",
			"Could not analyze the label image. Please try again.")
		return
	}
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

// respondVerificationError maps verification failures onto HTTP responses
func (h *Handler) respondVerificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientLabelData):
		respondError(c, http.StatusUnprocessableEntity, "LABEL_UNREADABLE",
			"Could not read enough of the label to verify. Please upload clearer photos.")
	case errors.Is(err, domain.ErrUnknownCategory):
		respondError(c, http.StatusBadRequest, "INVALID_PRODUCT_CATEGORY",
			"product_category must be one of: Wine, Distilled Spirits, Malt Beverage")
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid verification request")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
