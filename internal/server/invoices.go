package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoice-audit/internal/common"
	"invoice-audit/internal/extract"
)

type extractRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text" binding:"required"`
}

type fieldEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// handleExtract runs an extraction on the posted text and stores the
// result. Identical text short-circuits through the memo cache. When an
// AI client is configured as primary it goes first; any model error
// falls back to the rule-based pipeline.
func (s *Service) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "untitled.txt"
	}

	sum := sha256.Sum256([]byte(req.Text))
	key := hex.EncodeToString(sum[:])
	if cached, ok := s.cache.Get(key); ok {
		ex := cached.(*extract.InvoiceExtraction)
		s.logger.Info("extract.cache.hit", "filename", filename)
		rec, err := s.store.Save(c.Request.Context(), ex)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": rec.ID, "extraction": ex, "cached": true})
		return
	}

	ex := s.runExtraction(c, req.Text, filename)
	s.cache.SetDefault(key, ex)

	rec, err := s.store.Save(c.Request.Context(), ex)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "extraction": ex, "cached": false})
}

func (s *Service) runExtraction(c *gin.Context, text, filename string) *extract.InvoiceExtraction {
	if s.ai != nil && s.aiPrimary {
		ex, err := s.ai.ExtractInvoice(c.Request.Context(), text, filename)
		if err == nil {
			return ex
		}
		s.logger.Warn("extract.ai.fallback", "filename", filename, "error", err)
	}
	return extract.Extract(text, filename)
}

func (s *Service) handleList(c *gin.Context) {
	recs, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": recs, "count": len(recs)})
}

func (s *Service) handleGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	rec, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleFieldEdit overwrites one extracted field with a manual value.
// The field's method becomes "manual"; derived scores are left alone.
func (s *Service) handleFieldEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req fieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field and value are required"})
		return
	}

	rec, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := extract.ApplyFieldEdit(rec.Extraction, req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Update(c.Request.Context(), id, rec.Extraction); err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("invoice.field.edited", "id", id.String(), "field", req.Field)
	c.JSON(http.StatusOK, rec)
}

func (s *Service) handleClear(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	s.cache.Flush()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (s *Service) fail(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.logger.Error("http.handler.error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
