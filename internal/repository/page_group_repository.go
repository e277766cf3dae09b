package repository

import (
	"gorm.io/gorm"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// defaultPageGroups é o agrupamento inicial de tags exibido enquanto nenhuma
// configuração foi salva pelo administrador.
var defaultPageGroups = []model.PageGroup{
	{
		Title:        "Competência",
		Tags:         []string{"Locação", "Honorários", "Corretagem", "Mandatos", "Bancário", "Representação Comercial", "Comissão Mercantil", "Gestão de Negócios", "Depósito Mercantil"},
		DisplayOrder: 0,
	},
	{
		Title:        "Fase Processual",
		Tags:         []string{"Petição Inicial", "Liminares", "Contestação", "Instrução", "Sentença", "Execução"},
		DisplayOrder: 1,
	},
	{
		Title:        "Tipo de Decisão",
		Tags:         []string{"Despachos", "Decisões Interlocutórias", "Admissibilidade"},
		DisplayOrder: 2,
	},
	{
		Title:        "Natureza",
		Tags:         []string{"Mérito", "Liminares", "Embargos de declaração"},
		DisplayOrder: 3,
	},
	{
		Title:        "Temáticas",
		Tags:         []string{"Nulidades", "Prescrição", "Sucumbência", "Gratuidade de Justiça", "Juros e Correção Monetária", "CDC", "Responsabilidade Civil"},
		DisplayOrder: 4,
	},
}

// PageGroupRepository define as operações do agrupamento de tags em páginas.
type PageGroupRepository interface {
	// FindAll retorna os grupos ordenados por display_order. Com a tabela
	// vazia, semeia os grupos padrão antes de retornar.
	FindAll() ([]model.PageGroup, error)
	// ReplaceAll substitui o conjunto inteiro de grupos, atribuindo
	// display_order pela posição no slice recebido.
	ReplaceAll(groups []model.PageGroup) error
}

type pageGroupRepository struct {
	db *gorm.DB
}

func NewPageGroupRepository(db *gorm.DB) PageGroupRepository {
	return &pageGroupRepository{db: db}
}

func (r *pageGroupRepository) FindAll() ([]model.PageGroup, error) {
	var groups []model.PageGroup
	if err := r.db.Order("display_order").Find(&groups).Error; err != nil {
		return nil, err
	}
	if len(groups) > 0 {
		return groups, nil
	}

	log.Infof("nenhum grupo de páginas configurado, semeando os %d grupos padrão", len(defaultPageGroups))
	seed := make([]model.PageGroup, len(defaultPageGroups))
	copy(seed, defaultPageGroups)
	if err := r.db.Create(&seed).Error; err != nil {
		return nil, err
	}

	if err := r.db.Order("display_order").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *pageGroupRepository) ReplaceAll(groups []model.PageGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.PageGroup{}).Error; err != nil {
			return err
		}
		if len(groups) == 0 {
			return nil
		}
		rows := make([]model.PageGroup, len(groups))
		for i, g := range groups {
			rows[i] = model.PageGroup{
				Title:        g.Title,
				Tags:         g.Tags,
				DisplayOrder: i,
			}
		}
		return tx.Create(&rows).Error
	})
}
