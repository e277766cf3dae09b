// Package repository contém toda a interação com o banco de dados.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renanbrackmann-glitch/modelfinder/internal/classify"
	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

const (
	modeloCacheKey = "modelfinder:catalogo"
	modeloCacheTTL = 5 * time.Minute
)

// ModeloRepository define as operações de dados do registro de modelos.
type ModeloRepository interface {
	// UpsertAll insere ou atualiza cada modelo pela chave eproc_id,
	// preservando sobrescritas manuais de tags. Retorna quantas linhas foram
	// gravadas; a falha de uma linha não afeta as demais.
	UpsertAll(modelos []model.Modelo) (int, error)
	FindAll() ([]model.Modelo, error)
	FindByID(id uint) (*model.Modelo, error)
	FindByEprocID(eprocID string) (*model.Modelo, error)
	// UpdateContent grava a íntegra de um modelo localizado por eproc_id.
	UpdateContent(eprocID, conteudo string) (bool, error)
	// UpdateTags aplica uma sobrescrita manual: tags = manual_tags = tags e
	// unified_tags recalculado a partir de categoria ∪ tags.
	UpdateTags(id uint, tags []string) (bool, error)
	// ResetTags apenas anula manual_tags. As tags derivadas que estiverem
	// gravadas permanecem até a próxima importação reprocessar a linha
	// (reconciliação adiada, comportamento documentado).
	ResetTags(id uint) (bool, error)
}

type modeloRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewModeloRepository cria um ModeloRepository. O cliente Redis é opcional
// (cache do catálogo); com nil todas as leituras vão direto ao banco.
func NewModeloRepository(db *gorm.DB, rdb *redis.Client) ModeloRepository {
	return &modeloRepository{db: db, rdb: rdb}
}

// Colunas sobrescritas pela importação quando o eproc_id já existe.
var upsertColumns = []string{
	"orgao", "descricao", "sigla", "classificacao_original", "categoria",
	"tags", "unified_tags", "cor_hex", "manual_tags", "updated_at",
}

func (r *modeloRepository) UpsertAll(modelos []model.Modelo) (int, error) {
	if len(modelos) == 0 {
		return 0, nil
	}

	// Carrega as sobrescritas manuais existentes, chaveadas por eproc_id,
	// para preservá-las através de reimportações.
	var existing []model.Modelo
	if err := r.db.Select("eproc_id", "manual_tags").Find(&existing).Error; err != nil {
		return 0, err
	}
	manualTags := make(map[string][]string, len(existing))
	for _, m := range existing {
		if len(m.ManualTags) > 0 {
			manualTags[m.EprocID] = m.ManualTags
		}
	}

	count := 0
	for i := range modelos {
		m := modelos[i]
		if saved, ok := manualTags[m.EprocID]; ok {
			applyManualOverride(&m, saved)
		}

		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "eproc_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&m).Error
		if err != nil {
			// Linha com problema não derruba o restante do lote.
			log.Warnf("UpsertAll: falha ao gravar modelo eprocId=%s: %v", m.EprocID, err)
			continue
		}
		count++
	}

	r.invalidateCache()
	return count, nil
}

// applyManualOverride descarta as tags derivadas de uma reimportação em favor
// da sobrescrita manual preservada, recalculando as tags unificadas a partir
// de categoria ∪ tags manuais.
func applyManualOverride(m *model.Modelo, saved []string) {
	m.Tags = saved
	m.ManualTags = saved
	m.UnifiedTags = classify.UnifyTags(m.Categoria, saved)
}

func (r *modeloRepository) FindAll() ([]model.Modelo, error) {
	ctx := context.Background()

	if r.rdb != nil {
		if data, err := r.rdb.Get(ctx, modeloCacheKey).Bytes(); err == nil {
			var cached []model.Modelo
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var modelos []model.Modelo
	if err := r.db.Order("categoria, descricao").Find(&modelos).Error; err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if data, err := json.Marshal(modelos); err == nil {
			if err := r.rdb.Set(ctx, modeloCacheKey, data, modeloCacheTTL).Err(); err != nil {
				log.Warnf("FindAll: falha ao gravar cache do catálogo: %v", err)
			}
		}
	}

	return modelos, nil
}

func (r *modeloRepository) FindByID(id uint) (*model.Modelo, error) {
	var m model.Modelo
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modeloRepository) FindByEprocID(eprocID string) (*model.Modelo, error) {
	var m model.Modelo
	if err := r.db.Where("eproc_id = ?", eprocID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modeloRepository) UpdateContent(eprocID, conteudo string) (bool, error) {
	tx := r.db.Model(&model.Modelo{}).Where("eproc_id = ?", eprocID).Update("conteudo", conteudo)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	r.invalidateCache()
	return true, nil
}

func (r *modeloRepository) UpdateTags(id uint, tags []string) (bool, error) {
	var m model.Modelo
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	m.Tags = tags
	m.ManualTags = tags
	m.UnifiedTags = classify.UnifyTags(m.Categoria, tags)
	if err := r.db.Model(&m).Select("tags", "manual_tags", "unified_tags").Updates(&m).Error; err != nil {
		return false, err
	}

	r.invalidateCache()
	return true, nil
}

func (r *modeloRepository) ResetTags(id uint) (bool, error) {
	var m model.Modelo
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := r.db.Model(&m).Update("manual_tags", nil).Error; err != nil {
		return false, err
	}

	r.invalidateCache()
	return true, nil
}

// invalidateCache descarta o cache do catálogo após qualquer mutação.
func (r *modeloRepository) invalidateCache() {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(context.Background(), modeloCacheKey).Err(); err != nil {
		log.Warnf("falha ao invalidar o cache do catálogo: %v", err)
	}
}
