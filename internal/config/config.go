// Package config carrega e gerencia a configuração da aplicação.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Variável global de configuração, preenchida a partir do arquivo YAML.
var Conf Config

// Config é a estrutura de configuração da aplicação, espelhando config.yaml.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Tika     TikaConfig     `mapstructure:"tika"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig guarda as configurações do servidor HTTP.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig agrupa as conexões de banco de dados.
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig guarda a configuração do MySQL.
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig guarda a configuração do Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig guarda a configuração de log.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// MinIOConfig guarda a configuração do arquivamento em object storage.
type MinIOConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// TikaConfig guarda a configuração do servidor Tika usado na extração de texto.
type TikaConfig struct {
	ServerURL string `mapstructure:"server_url"`
}

// LLMConfig guarda a configuração do classificador externo (LLM).
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// AdminConfig guarda a senha padrão, usada enquanto nenhuma senha foi gravada.
type AdminConfig struct {
	DefaultPassword string `mapstructure:"default_password"`
}

// Init lê o arquivo YAML indicado e popula a variável global Conf.
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("falha ao ler o arquivo de configuração: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("falha ao desserializar a configuração: %w", err))
	}
}
