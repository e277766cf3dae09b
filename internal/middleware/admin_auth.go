// Package middleware reúne os middlewares Gin da aplicação.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// AdminAuth protege as rotas administrativas com a credencial compartilhada.
// A senha vem preferencialmente do cabeçalho X-Admin-Password; por
// compatibilidade com os clientes antigos também é aceita no campo password
// do corpo (JSON ou formulário multipart).
func AdminAuth(adminService service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		senha := c.GetHeader("X-Admin-Password")
		if senha == "" {
			senha = senhaDoCorpo(c)
		}

		if err := adminService.VerificarSenha(c.Request.Context(), senha); err != nil {
			log.Warnf("[AdminAuth] acesso negado a %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Senha de administrador incorreta",
			})
			return
		}

		c.Next()
	}
}

func senhaDoCorpo(c *gin.Context) string {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return c.PostForm("password")
	}

	if c.Request.Body == nil {
		return ""
	}

	// Espia o campo password e devolve o corpo intacto para o handler.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var payload struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Password
}
