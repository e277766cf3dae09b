package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// ModeloHandler atende as rotas do catálogo de modelos.
type ModeloHandler struct {
	catalogoService service.CatalogoService
	searchService   service.SearchService
}

func NewModeloHandler(catalogoService service.CatalogoService, searchService service.SearchService) *ModeloHandler {
	return &ModeloHandler{
		catalogoService: catalogoService,
		searchService:   searchService,
	}
}

// List retorna o catálogo completo. GET /api/models
func (h *ModeloHandler) List(c *gin.Context) {
	modelos, err := h.catalogoService.ListarModelos(c.Request.Context())
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, modelos)
}

// Get retorna um modelo com a íntegra. GET /api/models/:id
func (h *ModeloHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return
	}

	modelo, err := h.catalogoService.BuscarModelo(c.Request.Context(), uint(id))
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, modelo)
}

// Search filtra o catálogo por texto livre e tags. GET /api/models/search
func (h *ModeloHandler) Search(c *gin.Context) {
	query := c.Query("query")

	var tags []string
	for _, bloco := range c.QueryArray("tags") {
		for _, tag := range strings.Split(bloco, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	modelos, err := h.searchService.Buscar(c.Request.Context(), query, tags)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, modelos)
}

// Tags retorna o índice de tags do catálogo. GET /api/tags
func (h *ModeloHandler) Tags(c *gin.Context) {
	indice, err := h.searchService.IndiceDeTags(c.Request.Context())
	if err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, indice)
}

// Upload importa a planilha de modelos exportada do eproc.
// POST /api/models/upload (admin)
func (h *ModeloHandler) Upload(c *gin.Context) {
	fileName, data, ok := lerArquivo(c)
	if !ok {
		return
	}

	count, err := h.catalogoService.ImportarPlanilha(c.Request.Context(), fileName, data)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	log.Infof("[ModeloHandler] planilha %q importada: %d modelos", fileName, count)
	respondData(c, gin.H{
		"message": fmt.Sprintf("%d modelos importados com sucesso", count),
		"count":   count,
	})
}

// UploadConteudo importa a planilha de íntegras (eprocId + texto).
// POST /api/models/upload-content (admin)
func (h *ModeloHandler) UploadConteudo(c *gin.Context) {
	fileName, data, ok := lerArquivo(c)
	if !ok {
		return
	}

	resultado, err := h.catalogoService.ImportarConteudo(c.Request.Context(), fileName, data)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	respondData(c, gin.H{
		"message":  fmt.Sprintf("%d modelos atualizados com íntegra", resultado.Atualizados),
		"updated":  resultado.Atualizados,
		"skipped":  resultado.Ignorados,
		"notFound": resultado.NaoEncontrados,
	})
}

// AtualizarTags grava uma sobrescrita manual de tags.
// PUT /api/admin/models/:id/tags
func (h *ModeloHandler) AtualizarTags(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Tags == nil {
		respondError(c, http.StatusBadRequest, "Formato inválido: esperado { tags: string[] }")
		return
	}

	if err := h.catalogoService.AtualizarTags(c.Request.Context(), uint(id), req.Tags); err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, gin.H{"message": "Tags atualizadas com sucesso"})
}

// ReverterTags descarta a sobrescrita manual de um modelo.
// PUT /api/admin/models/:id/reset-tags
func (h *ModeloHandler) ReverterTags(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.catalogoService.ReverterTags(c.Request.Context(), uint(id)); err != nil {
		mapServiceError(c, err)
		return
	}
	respondData(c, gin.H{"message": "Tags revertidas para automático. Reprocesse na próxima importação."})
}

// lerArquivo lê o arquivo enviado no campo multipart "file". Responde o erro
// HTTP e retorna ok=false quando o arquivo falta ou não pode ser lido.
func lerArquivo(c *gin.Context) (string, []byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Nenhum arquivo enviado")
		return "", nil, false
	}

	data, err := lerMultipart(fileHeader)
	if err != nil {
		log.Error("falha ao ler arquivo enviado", err)
		respondError(c, http.StatusBadRequest, "Falha ao ler o arquivo enviado")
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

func lerMultipart(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
