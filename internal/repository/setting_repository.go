package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
)

// SettingRepository guarda pares chave-valor de configuração da aplicação,
// como o hash da senha de administrador.
type SettingRepository interface {
	// Get retorna o valor da chave, ou "" sem erro quando a chave não existe.
	Get(key string) (string, error)
	Set(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (string, error) {
	var s model.AppSetting
	if err := r.db.Where("`key` = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

func (r *settingRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.AppSetting{Key: key, Value: value}).Error
}
