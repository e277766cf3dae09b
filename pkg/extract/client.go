// Package extract fornece um cliente do Apache Tika para extração de texto de documentos.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/renanbrackmann-glitch/modelfinder/internal/config"
)

// Client define a interface de extração de texto de um documento binário.
type Client interface {
	ExtractText(ctx context.Context, fileReader io.Reader, fileName string) (string, error)
}

type tikaClient struct {
	serverURL string
	client    *http.Client
}

// NewClient cria um cliente para o servidor Tika configurado.
func NewClient(cfg config.TikaConfig) Client {
	return &tikaClient{
		serverURL: cfg.ServerURL,
		client:    &http.Client{},
	}
}

// ExtractText infere o tipo MIME pela extensão do arquivo e pede ao Tika o texto puro.
func (c *tikaClient) ExtractText(ctx context.Context, fileReader io.Reader, fileName string) (string, error) {
	contentType := detectMimeType(fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.serverURL+"/tika", fileReader)
	if err != nil {
		return "", fmt.Errorf("falha ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao chamar o Tika: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tika retornou erro [%d]: %s", resp.StatusCode, string(body))
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return "", fmt.Errorf("falha ao ler a resposta do Tika: %w", err)
	}

	return buf.String(), nil
}

// detectMimeType determina o Content-Type pela extensão do arquivo.
func detectMimeType(fileName string) string {
	ext := filepath.Ext(fileName)
	if ext == "" {
		return "application/octet-stream"
	}
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}
