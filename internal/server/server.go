package server

import (
	"context"
	"net/http"
	"time"

	"github.com/camaraaberta/ceap/internal/config"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	rankingdomain "github.com/camaraaberta/ceap/internal/ranking/domain"
	uploaddomain "github.com/camaraaberta/ceap/internal/upload/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	despesaSvc  despesadomain.Service
	deputadoSvc deputadodomain.Service
	rankingSvc  rankingdomain.Service
	uploadSvc   uploaddomain.Service

	despesaRepo  despesadomain.Repository
	deputadoRepo deputadodomain.Repository
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	DespesaSvc  despesadomain.Service
	DeputadoSvc deputadodomain.Service
	RankingSvc  rankingdomain.Service
	UploadSvc   uploaddomain.Service

	DespesaRepo  despesadomain.Repository
	DeputadoRepo deputadodomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		despesaSvc:  p.DespesaSvc,
		deputadoSvc: p.DeputadoSvc,
		rankingSvc:  p.RankingSvc,
		uploadSvc:   p.UploadSvc,

		despesaRepo:  p.DespesaRepo,
		deputadoRepo: p.DeputadoRepo,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	despesas := api.Group("/despesas")
	despesas.GET("", s.listDespesas)
	despesas.GET("/summary", s.despesasSummary)
	despesas.GET("/:id", s.getDespesa)

	deputados := api.Group("/deputados")
	deputados.GET("", s.listDeputados)
	deputados.GET("/statistics", s.deputadosStatistics)
	deputados.GET("/:id", s.getDeputado)

	rankings := api.Group("/rankings")
	rankings.GET("", s.rankingDispatch)
	rankings.GET("/gastos_totais", s.rankingGastosTotais)
	rankings.GET("/por_categoria", s.rankingPorCategoria)
	rankings.GET("/por_estado", s.rankingPorEstado)
	rankings.GET("/por_partido", s.rankingPorPartido)
	rankings.GET("/eficiencia_gastos", s.rankingEficiencia)
	rankings.GET("/comparativo_temporal", s.rankingComparativoTemporal)

	uploads := api.Group("/uploads")
	uploads.POST("", s.createUpload)
	uploads.GET("/status", s.uploadsOverview)
	uploads.GET("/:id/status", s.getUploadStatus)
}
