package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// AnaliseHandler atende a análise de recursos em PDF.
type AnaliseHandler struct {
	analiseService service.AnaliseService
}

func NewAnaliseHandler(analiseService service.AnaliseService) *AnaliseHandler {
	return &AnaliseHandler{analiseService: analiseService}
}

// AnalisarPDF extrai o texto do recurso e o confronta com o catálogo de
// modelos via IA. POST /api/analyze-pdf
func (h *AnaliseHandler) AnalisarPDF(c *gin.Context) {
	fileName, data, ok := lerArquivo(c)
	if !ok {
		return
	}

	log.Infof("[AnaliseHandler] análise de %q (%d bytes)", fileName, len(data))
	analise, err := h.analiseService.AnalisarPDF(c.Request.Context(), fileName, data)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, analise)
}
