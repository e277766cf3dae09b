// Package model define as estruturas Go correspondentes às tabelas do banco.
package model

import "time"

// Modelo corresponde à tabela 'models': um modelo de documento jurídico do
// gabinete, já normalizado e classificado para pesquisa.
type Modelo struct {
	// ID é a chave primária substituta, atribuída na persistência.
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// EprocID é a chave de negócio estável vinda da planilha do eproc.
	EprocID string `gorm:"type:varchar(64);uniqueIndex;not null" json:"eprocId"`
	// Orgao é o gabinete dono do modelo.
	Orgao string `gorm:"type:varchar(64);not null;default:'GabRJL'" json:"orgao"`
	// Descricao convencionalmente segue o formato "<CATEGORIA> - <texto livre>".
	Descricao string `gorm:"type:text;not null" json:"descricao"`
	// Sigla é o código mnemônico curto, copiável.
	Sigla string `gorm:"type:varchar(255);not null" json:"sigla"`
	// ClassificacaoOriginal é o caminho de classificação bruto, separado por " - ".
	ClassificacaoOriginal string `gorm:"type:text;not null" json:"classificacaoOriginal"`
	// Categoria é derivada do prefixo da descrição; "OUTROS" quando ausente.
	Categoria string `gorm:"type:varchar(128);not null;default:'OUTROS'" json:"categoria"`
	// Tags guarda a lista efetiva de tags: a derivada na importação ou a
	// sobrescrita manualmente pelo administrador.
	Tags []string `gorm:"serializer:json" json:"tags"`
	// UnifiedTags é a união normalizada e deduplicada de categoria e tags
	// efetivas; é o único campo consultado no filtro por tag.
	UnifiedTags []string `gorm:"serializer:json" json:"unifiedTags"`
	// CorHex segue as regras de cor do eproc; "#FFFFFF" quando nenhuma casa.
	CorHex string `gorm:"type:varchar(7);not null;default:'#FFFFFF'" json:"corHex"`
	// Conteudo é a íntegra do modelo, alimentada por um caminho de upload
	// separado; nil até ser fornecida.
	Conteudo *string `gorm:"type:longtext" json:"conteudo"`
	// ManualTags não-nulo indica sobrescrita de tags pelo administrador; nesse
	// caso ele, e não a derivação automática, é o valor autoritativo.
	ManualTags []string `gorm:"serializer:json" json:"manualTags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName indica o nome da tabela deste modelo.
func (Modelo) TableName() string {
	return "models"
}

// LinhaCatalogo é uma linha bruta da planilha de catálogo, antes da classificação.
type LinhaCatalogo struct {
	Orgao         string
	Codigo        string
	Descricao     string
	Sigla         string
	Classificacao string
}
