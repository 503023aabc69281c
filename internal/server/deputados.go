package server

import (
	"net/http"
	"strconv"

	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) listDeputados(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page", "invalid_page", "invalid value"))
		return
	}

	resp, err := s.deputadoSvc.List(c.Request.Context(), deputadodomain.ListRequest{
		UF:      c.Query("uf"),
		Partido: c.Query("partido"),
		Search:  c.Query("busca"),
		OrderBy: c.Query("order_by"),
		Page:    page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getDeputado(c *gin.Context) {
	deputadoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_deputado_id", "invalid value"))
		return
	}

	detail, err := s.deputadoSvc.GetByNaturalID(c.Request.Context(), deputadoID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (s *Server) deputadosStatistics(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 10)

	stats, err := s.deputadoSvc.Statistics(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
