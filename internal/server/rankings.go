package server

import (
	"net/http"
	"time"

	rankingdomain "github.com/camaraaberta/ceap/internal/ranking/domain"
	"github.com/gin-gonic/gin"
)

// rankingDispatch serves /api/rankings?tipo=... for clients that select
// the ranking by parameter instead of by path.
func (s *Server) rankingDispatch(c *gin.Context) {
	switch c.DefaultQuery("tipo", "gastos_totais") {
	case "gastos_totais":
		s.rankingGastosTotais(c)
	case "por_categoria":
		s.rankingPorCategoria(c)
	case "por_estado":
		s.rankingPorEstado(c)
	case "por_partido":
		s.rankingPorPartido(c)
	case "eficiencia", "eficiencia_gastos":
		s.rankingEficiencia(c)
	case "comparativo_temporal":
		s.rankingComparativoTemporal(c)
	default:
		AbortWithError(c, newValidationError("tipo", "invalid_tipo", "invalid value"))
	}
}

func (s *Server) rankingGastosTotais(c *gin.Context) {
	filter, err := rankingFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitGastosTotais)

	entries, err := s.rankingSvc.GastosTotais(c.Request.Context(), filter, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "gastos_totais",
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func (s *Server) rankingPorCategoria(c *gin.Context) {
	filter, err := rankingFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitCategoria)

	entries, categoria, err := s.rankingSvc.PorCategoria(c.Request.Context(), filter, c.Query("categoria"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "por_categoria",
		"categoria":      categoria,
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func (s *Server) rankingPorEstado(c *gin.Context) {
	filter, err := rankingFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if uf := c.Query("uf"); uf != "" {
		limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitEstado)
		entries, err := s.rankingSvc.PorEstadoUF(c.Request.Context(), filter, uf, limit)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tipo":           "por_estado",
			"uf":             uf,
			"total_posicoes": len(entries),
			"data":           entries,
		})
		return
	}

	rollup, err := s.rankingSvc.RollupEstados(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	type estadoEntry struct {
		rankingdomain.GroupEntry
		UF string `json:"uf"`
	}
	entries := make([]estadoEntry, 0, len(rollup))
	for _, row := range rollup {
		entries = append(entries, estadoEntry{GroupEntry: row, UF: row.Chave})
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "por_estado",
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func (s *Server) rankingPorPartido(c *gin.Context) {
	filter, err := rankingFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if partido := c.Query("partido"); partido != "" {
		limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitEstado)
		entries, err := s.rankingSvc.PorPartidoEspecifico(c.Request.Context(), filter, partido, limit)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tipo":           "por_partido",
			"partido":        partido,
			"total_posicoes": len(entries),
			"data":           entries,
		})
		return
	}

	rollup, err := s.rankingSvc.RollupPartidos(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	type partidoEntry struct {
		rankingdomain.GroupEntry
		Partido string `json:"partido"`
	}
	entries := make([]partidoEntry, 0, len(rollup))
	for _, row := range rollup {
		entries = append(entries, partidoEntry{GroupEntry: row, Partido: row.Chave})
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "por_partido",
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func (s *Server) rankingEficiencia(c *gin.Context) {
	filter, err := rankingFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	minDocumentos := parseLimit(c.Query("min_documentos"), rankingdomain.DefaultMinDocumentos)
	limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitEficiencia)

	entries, err := s.rankingSvc.Eficiencia(c.Request.Context(), filter, minDocumentos, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "eficiencia",
		"min_documentos": minDocumentos,
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func (s *Server) rankingComparativoTemporal(c *gin.Context) {
	anoAtualParam, err := parseOptionalInt(c.Query("ano_atual"))
	if err != nil {
		AbortWithError(c, newValidationError("ano_atual", "invalid_ano_atual", "invalid value"))
		return
	}
	anoAnteriorParam, err := parseOptionalInt(c.Query("ano_anterior"))
	if err != nil {
		AbortWithError(c, newValidationError("ano_anterior", "invalid_ano_anterior", "invalid value"))
		return
	}

	anoAtual := time.Now().Year()
	if anoAtualParam != nil {
		anoAtual = *anoAtualParam
	}
	anoAnterior := anoAtual - 1
	if anoAnteriorParam != nil {
		anoAnterior = *anoAnteriorParam
	}
	limit := parseLimit(c.Query("limit"), rankingdomain.DefaultLimitTemporal)

	entries, err := s.rankingSvc.ComparativoTemporal(c.Request.Context(), anoAtual, anoAnterior, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tipo":           "comparativo_temporal",
		"ano_atual":      anoAtual,
		"ano_anterior":   anoAnterior,
		"total_posicoes": len(entries),
		"data":           entries,
	})
}

func rankingFilterFromQuery(c *gin.Context) (rankingdomain.Filter, error) {
	filter := rankingdomain.Filter{
		UF:      c.Query("uf"),
		Partido: c.Query("partido"),
	}

	var err error
	if filter.Ano, err = parseOptionalInt(c.Query("ano")); err != nil {
		return filter, newValidationError("ano", "invalid_ano", "invalid value")
	}
	if filter.Mes, err = parseOptionalInt(c.Query("mes")); err != nil {
		return filter, newValidationError("mes", "invalid_mes", "invalid value")
	}
	return filter, nil
}
