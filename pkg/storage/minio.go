// Package storage fornece o arquivamento de arquivos recebidos em object storage (MinIO).
package storage

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/renanbrackmann-glitch/modelfinder/internal/config"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// MinioClient é a instância global do cliente MinIO. Permanece nil quando o
// arquivamento está desabilitado na configuração.
var MinioClient *minio.Client

var bucketName string

// InitMinIO inicializa o cliente MinIO e garante que o bucket exista.
func InitMinIO(cfg config.MinIOConfig) {
	if !cfg.Enabled {
		log.Info("Arquivamento em MinIO desabilitado")
		return
	}

	var err error
	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("falha ao inicializar o cliente MinIO", err)
	}

	bucketName = cfg.BucketName

	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("falha ao verificar o bucket MinIO", err)
	}

	if !exists {
		if err := MinioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("falha ao criar o bucket MinIO", err)
		}
		log.Infof("Bucket '%s' criado", bucketName)
	}

	log.Info("Cliente MinIO inicializado")
}

// Archive grava uma cópia do arquivo no bucket, sob o nome de objeto indicado.
// É melhor-esforço: com o cliente desabilitado retorna nil e falhas cabem ao
// chamador apenas registrar, nunca abortar a requisição.
func Archive(ctx context.Context, objectName string, data []byte, contentType string) error {
	if MinioClient == nil {
		return nil
	}
	_, err := MinioClient.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}
