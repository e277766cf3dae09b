// Package database fornece a inicialização das conexões MySQL e Redis.
package database

import (
	"time"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// DB é a instância global do GORM, disponível após InitMySQL.
var DB *gorm.DB

// InitMySQL conecta ao MySQL a partir do DSN e inicializa o DB global.
// Configura o pool de conexões e encaminha o log do GORM para o zap.
func InitMySQL(dsn string) {
	gormLogger := zapgorm2.New(log.Logger())
	gormLogger.SetAsDefault()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		log.Fatal("falha ao conectar ao MySQL", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("falha ao obter o sql.DB subjacente", err)
	}

	sqlDB.SetMaxIdleConns(10)           // conexões ociosas máximas
	sqlDB.SetMaxOpenConns(100)          // conexões abertas máximas
	sqlDB.SetConnMaxLifetime(time.Hour) // tempo máximo de reutilização de conexão

	log.Info("Conexão com o MySQL estabelecida")
}

// RunMigrate cria/atualiza as tabelas do catálogo.
func RunMigrate() error {
	return DB.AutoMigrate(
		&model.Modelo{},
		&model.PageGroup{},
		&model.AppSetting{},
	)
}
