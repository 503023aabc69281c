package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errDeputadoIDMissing = errors.New("identificador do deputado ausente")

// deputadoResolver finds or creates the owning Deputado for each row. The
// cache lives for one run only so repeated rows of the same parliamentarian
// hit the database once.
type deputadoResolver struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  deputadodomain.Repository
	cache map[string]snowflake.ID
}

func newDeputadoResolver(log *zap.Logger, genID *snowflake.Node, repo deputadodomain.Repository) *deputadoResolver {
	return &deputadoResolver{
		log:   log,
		genID: genID,
		repo:  repo,
		cache: make(map[string]snowflake.ID),
	}
}

func (r *deputadoResolver) resolve(ctx context.Context, conn *gorm.DB, row rowView) (snowflake.ID, error) {
	naturalID := parseInt(row.get(colDeputadoID))
	if naturalID == nil {
		return 0, errDeputadoIDMissing
	}

	nome := cleanField(row.get(colNome))
	key := cacheKey(nome, *naturalID)
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	existing, err := r.repo.FindByNaturalID(ctx, conn, *naturalID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		r.cache[key] = existing.ID
		return existing.ID, nil
	}

	now := time.Now().UTC()
	deputado := &deputadodomain.Deputado{
		ID:                  r.genID.Generate(),
		DeputadoID:          *naturalID,
		Nome:                nome,
		CPF:                 cleanField(row.get(colCPF)),
		CarteiraParlamentar: cleanField(row.get(colCarteira)),
		UF:                  cleanField(row.get(colUF)),
		Partido:             cleanField(row.get(colPartido)),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := r.repo.Insert(ctx, conn, deputado); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return 0, err
		}
		// Lost a race with a concurrent run. The winner's row is the one
		// to reuse.
		existing, ferr := r.repo.FindByNaturalID(ctx, conn, *naturalID)
		if ferr != nil {
			return 0, ferr
		}
		if existing == nil {
			return 0, err
		}
		r.cache[key] = existing.ID
		return existing.ID, nil
	}

	r.log.Debug("deputado created",
		zap.Int("deputado_id", *naturalID),
		zap.Stringp("nome", nome),
	)
	r.cache[key] = deputado.ID
	return deputado.ID, nil
}

func cacheKey(nome *string, naturalID int) string {
	name := ""
	if nome != nil {
		name = *nome
	}
	return fmt.Sprintf("%s_%d", name, naturalID)
}
