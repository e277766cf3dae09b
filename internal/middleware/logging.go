package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// Limite de bytes do corpo registrado no log.
const maxCorpoLogado = 2048

// bodyLogWriter captura a resposta escrita pelo handler.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Campos de credencial mascarados nos corpos registrados.
var camposRedigidos = []string{"password", "newPassword"}

// RequestLogger registra cada requisição com latência, status e corpos
// truncados. Corpos multipart (planilhas e PDFs) não são registrados e os
// campos de senha em corpos JSON são mascarados antes do log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil && !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		log.Infow("requisição HTTP",
			"status", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestBody", truncar(redigirCredenciais(requestBody)),
			"responseBody", truncar(blw.body.Bytes()),
		)
	}
}

// redigirCredenciais substitui o valor dos campos de senha de um corpo JSON
// antes do registro. Corpos que não são um objeto JSON passam inalterados.
func redigirCredenciais(body []byte) []byte {
	if len(body) == 0 {
		return body
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return body
	}

	alterado := false
	for _, campo := range camposRedigidos {
		if _, ok := payload[campo]; ok {
			payload[campo] = "[REDIGIDO]"
			alterado = true
		}
	}
	if !alterado {
		return body
	}

	redigido, err := json.Marshal(payload)
	if err != nil {
		return body
	}
	return redigido
}

func truncar(b []byte) string {
	if len(b) > maxCorpoLogado {
		return string(b[:maxCorpoLogado]) + "…"
	}
	return string(b)
}
