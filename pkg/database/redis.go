package database

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// RDB é o cliente Redis global, usado como cache do catálogo.
var RDB *redis.Client

// InitRedis inicializa a conexão com o Redis.
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Testa a conexão
	ctx := context.Background()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("falha ao conectar ao Redis", err)
	}

	log.Info("Conexão com o Redis estabelecida")
}
