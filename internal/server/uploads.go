package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) createUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "invalid value"))
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		AbortWithError(c, newValidationError("file", "invalid_file_type", "invalid value"))
		return
	}
	if fileHeader.Size > s.cfg.UploadMaxBytes {
		AbortWithError(c, newValidationError("file", "file_too_large", "invalid value"))
		return
	}

	content, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer content.Close()

	status, err := s.uploadSvc.Submit(c.Request.Context(), fileHeader.Filename, fileHeader.Size, content)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"upload_id":  status.ID,
		"status":     status.State,
		"status_url": fmt.Sprintf("/api/uploads/%s/status", status.ID),
	})
}

func (s *Server) getUploadStatus(c *gin.Context) {
	status, err := s.uploadSvc.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}

// uploadsOverview reports how much data previous uploads have loaded.
func (s *Server) uploadsOverview(c *gin.Context) {
	ctx := c.Request.Context()

	totalDeputados, err := s.deputadoRepo.Count(ctx, s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	totalDespesas, err := s.despesaRepo.Count(ctx, s.db, despesadomain.Filter{})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	lastUpdated, err := s.despesaRepo.LastUpdatedAt(ctx, s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"total_deputados":    totalDeputados,
			"total_despesas":     totalDespesas,
			"ultima_atualizacao": lastUpdated,
			"dados_disponiveis":  totalDespesas > 0,
		},
	})
}
