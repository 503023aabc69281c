package server

import (
	"net/http"

	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) listDespesas(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page", "invalid_page", "invalid value"))
		return
	}

	filter, err := despesaFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.despesaSvc.List(c.Request.Context(), despesadomain.ListRequest{
		Filter:  filter,
		OrderBy: c.Query("order_by"),
		Page:    page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getDespesa(c *gin.Context) {
	despesa, err := s.despesaSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": despesa})
}

func (s *Server) despesasSummary(c *gin.Context) {
	filter, err := despesaFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.despesaSvc.Summary(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func despesaFilterFromQuery(c *gin.Context) (despesadomain.Filter, error) {
	filter := despesadomain.Filter{
		UF:         c.Query("uf"),
		Partido:    c.Query("partido"),
		Categoria:  c.Query("categoria"),
		Fornecedor: c.Query("fornecedor"),
	}

	deputadoID, err := parseOptionalSnowflakeID(c.Query("deputado_id"))
	if err != nil {
		return filter, err
	}
	filter.DeputadoID = deputadoID

	if filter.Mes, err = parseOptionalInt(c.Query("mes")); err != nil {
		return filter, newValidationError("mes", "invalid_mes", "invalid value")
	}
	if filter.Ano, err = parseOptionalInt(c.Query("ano")); err != nil {
		return filter, newValidationError("ano", "invalid_ano", "invalid value")
	}
	if filter.DataInicio, err = parseOptionalTime(c.Query("data_inicio"), false); err != nil {
		return filter, newValidationError("data_inicio", "invalid_data_inicio", "invalid value")
	}
	if filter.DataFim, err = parseOptionalTime(c.Query("data_fim"), true); err != nil {
		return filter, newValidationError("data_fim", "invalid_data_fim", "invalid value")
	}
	if filter.ValorMin, err = parseOptionalDecimal(c.Query("valor_min")); err != nil {
		return filter, newValidationError("valor_min", "invalid_valor_min", "invalid value")
	}
	if filter.ValorMax, err = parseOptionalDecimal(c.Query("valor_max")); err != nil {
		return filter, newValidationError("valor_max", "invalid_valor_max", "invalid value")
	}

	return filter, nil
}
