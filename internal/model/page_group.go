package model

// PageGroup corresponde à tabela 'page_groups': um agrupamento nomeado de tags,
// curado pelo administrador, que popula os "pontos de partida" da tela inicial.
type PageGroup struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// Title é o título exibido do grupo.
	Title string `gorm:"type:varchar(128);not null" json:"title"`
	// Tags guarda os nomes de exibição das tags do grupo, em ordem.
	Tags []string `gorm:"serializer:json" json:"tags"`
	// DisplayOrder define a ordem de renderização; estável e tolerante a lacunas.
	DisplayOrder int `gorm:"not null;default:0" json:"displayOrder"`
}

// TableName indica o nome da tabela deste modelo.
func (PageGroup) TableName() string {
	return "page_groups"
}

// AppSetting corresponde à tabela 'app_settings': um chave-valor plano usado
// hoje apenas para a senha do administrador.
type AppSetting struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key   string `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// TableName indica o nome da tabela deste modelo.
func (AppSetting) TableName() string {
	return "app_settings"
}
