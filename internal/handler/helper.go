// Package handler expõe a API HTTP do catálogo de modelos.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"code": status, "message": message})
}

// mapServiceError traduz os erros sentinela dos serviços em respostas HTTP.
func mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModeloNaoEncontrado):
		respondError(c, http.StatusNotFound, "Modelo não encontrado")
	case errors.Is(err, service.ErrPlanilhaInvalida):
		respondError(c, http.StatusBadRequest, "Planilha vazia ou formato inválido")
	case errors.Is(err, service.ErrExtracaoFalhou):
		respondError(c, http.StatusUnprocessableEntity,
			"Não foi possível extrair texto do PDF. Verifique se o arquivo não está protegido ou escaneado sem OCR.")
	case errors.Is(err, service.ErrRespostaIAInvalida):
		respondError(c, http.StatusInternalServerError, "Resposta da IA em formato inválido. Tente novamente.")
	case errors.Is(err, service.ErrSenhaIncorreta):
		respondError(c, http.StatusUnauthorized, "Senha incorreta")
	case errors.Is(err, service.ErrSenhaFraca):
		respondError(c, http.StatusBadRequest, "A nova senha deve ter pelo menos 6 caracteres")
	default:
		log.Error("erro interno no atendimento da requisição", err)
		respondError(c, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
