package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
)

// AdminHandler atende a credencial de administração e os grupos de páginas.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListarGrupos retorna os grupos de páginas, semeando os padrões quando a
// tabela está vazia. GET /api/page-groups (público)
func (h *AdminHandler) ListarGrupos(c *gin.Context) {
	grupos, err := h.adminService.ListarGrupos(c.Request.Context())
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, grupos)
}

// SalvarGrupos substitui todos os grupos de páginas.
// PUT /api/admin/page-groups
func (h *AdminHandler) SalvarGrupos(c *gin.Context) {
	var grupos []model.PageGroup
	if err := c.ShouldBindJSON(&grupos); err != nil {
		respondError(c, http.StatusBadRequest, "Formato inválido: esperado array de grupos")
		return
	}

	if err := h.adminService.SalvarGrupos(c.Request.Context(), grupos); err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, gin.H{"message": "Grupos salvos com sucesso", "count": len(grupos)})
}

// VerificarSenha confere a credencial sem alterá-la.
// POST /api/admin/verify-password
func (h *AdminHandler) VerificarSenha(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Formato inválido: esperado { password: string }")
		return
	}

	if err := h.adminService.VerificarSenha(c.Request.Context(), req.Password); err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, gin.H{"ok": true})
}

// AlterarSenha rotaciona a credencial de administração.
// PUT /api/admin/password
func (h *AdminHandler) AlterarSenha(c *gin.Context) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Formato inválido: esperado { newPassword: string }")
		return
	}

	if err := h.adminService.AlterarSenha(c.Request.Context(), req.NewPassword); err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, gin.H{"message": "Senha alterada com sucesso"})
}
