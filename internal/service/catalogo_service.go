package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/renanbrackmann-glitch/modelfinder/internal/classify"
	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/internal/repository"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Quantas linhas iniciais são inspecionadas em busca do cabeçalho real.
// As exportações do eproc trazem uma linha de metadados antes do cabeçalho.
const maxLinhasCabecalho = 5

// ResultadoConteudo resume uma importação de íntegras.
type ResultadoConteudo struct {
	Atualizados    int `json:"updated"`
	Ignorados      int `json:"skipped"`
	NaoEncontrados int `json:"notFound"`
}

// CatalogoService cobre o registro de modelos: importação de planilhas,
// consulta e sobrescrita manual de tags.
type CatalogoService interface {
	// ImportarPlanilha processa uma planilha exportada do eproc e grava cada
	// linha classificada no registro. Retorna quantos modelos foram gravados.
	ImportarPlanilha(ctx context.Context, fileName string, data []byte) (int, error)
	// ImportarConteudo processa uma planilha de íntegras (eprocId + texto) e
	// anexa o conteúdo aos modelos já registrados.
	ImportarConteudo(ctx context.Context, fileName string, data []byte) (*ResultadoConteudo, error)
	ListarModelos(ctx context.Context) ([]model.Modelo, error)
	BuscarModelo(ctx context.Context, id uint) (*model.Modelo, error)
	// AtualizarTags grava uma sobrescrita manual das tags de um modelo.
	AtualizarTags(ctx context.Context, id uint, tags []string) error
	// ReverterTags descarta a sobrescrita manual; as tags derivadas voltam a
	// valer na próxima importação.
	ReverterTags(ctx context.Context, id uint) error
}

type catalogoService struct {
	modeloRepo repository.ModeloRepository
}

func NewCatalogoService(modeloRepo repository.ModeloRepository) CatalogoService {
	return &catalogoService{modeloRepo: modeloRepo}
}

func (s *catalogoService) ImportarPlanilha(ctx context.Context, fileName string, data []byte) (int, error) {
	rows, err := lerPrimeiraAba(data)
	if err != nil {
		return 0, err
	}

	headerIdx := localizarCabecalho(rows, func(linha string) bool {
		return strings.Contains(linha, "rgão") || strings.Contains(linha, "código") || strings.Contains(linha, "escri")
	})

	// Mapeia as colunas pelo nome normalizado do cabeçalho; na falta de um
	// cabeçalho reconhecível vale a ordem padrão da exportação do eproc.
	colunas := map[string]int{"orgao": 0, "codigo": 1, "descricao": 2, "sigla": 3, "classificacao": 4}
	for i, h := range rows[headerIdx] {
		hn := classify.Normalize(h)
		switch {
		case strings.Contains(hn, "rgao") || strings.Contains(hn, "orgao"):
			colunas["orgao"] = i
		case strings.Contains(hn, "codigo") || strings.Contains(hn, "cdigo"):
			colunas["codigo"] = i
		case strings.Contains(hn, "descri"):
			colunas["descricao"] = i
		case strings.Contains(hn, "sigla"):
			colunas["sigla"] = i
		case strings.Contains(hn, "classifica"):
			colunas["classificacao"] = i
		}
	}

	modelos := make([]model.Modelo, 0, len(rows))
	for idx, row := range rows[headerIdx+1:] {
		if linhaVazia(row) {
			continue
		}
		linha := model.LinhaCatalogo{
			Orgao:         strings.TrimSpace(celula(row, colunas["orgao"])),
			Codigo:        strings.TrimSpace(celula(row, colunas["codigo"])),
			Descricao:     strings.TrimSpace(celula(row, colunas["descricao"])),
			Sigla:         strings.TrimSpace(celula(row, colunas["sigla"])),
			Classificacao: strings.TrimSpace(celula(row, colunas["classificacao"])),
		}
		modelos = append(modelos, montarModelo(linha, idx))
	}
	if len(modelos) == 0 {
		return 0, ErrPlanilhaInvalida
	}

	count, err := s.modeloRepo.UpsertAll(modelos)
	if err != nil {
		return 0, fmt.Errorf("falha ao gravar modelos importados: %w", err)
	}
	log.Infof("[CatalogoService] importação de %q: %d modelos gravados", fileName, count)

	// Arquivamento melhor-esforço da planilha original.
	objeto := fmt.Sprintf("planilhas/%d-%s", time.Now().Unix(), fileName)
	if err := storage.Archive(ctx, objeto, data, xlsxContentType); err != nil {
		log.Warnf("falha ao arquivar planilha %q: %v", fileName, err)
	}

	return count, nil
}

// montarModelo classifica uma linha da planilha e monta a entidade pronta
// para o upsert. Linhas sem código ou sigla ganham identificadores sintéticos.
func montarModelo(linha model.LinhaCatalogo, idx int) model.Modelo {
	codigo := linha.Codigo
	if codigo == "" {
		codigo = fmt.Sprintf("auto-%d-%d", time.Now().UnixMilli(), idx)
	}
	sigla := linha.Sigla
	if sigla == "" {
		sigla = fmt.Sprintf("modelo-%d", idx)
	}
	orgao := linha.Orgao
	if orgao == "" {
		orgao = "GabRJL"
	}

	c := classify.Classify(linha.Descricao, linha.Classificacao, classify.Options{EnableAutoTags: true})

	return model.Modelo{
		EprocID:               codigo,
		Orgao:                 orgao,
		Descricao:             linha.Descricao,
		Sigla:                 sigla,
		ClassificacaoOriginal: linha.Classificacao,
		Categoria:             c.Categoria,
		Tags:                  c.Tags,
		UnifiedTags:           classify.UnifyTags(c.Categoria, c.Tags),
		CorHex:                c.CorHex,
	}
}

func (s *catalogoService) ImportarConteudo(ctx context.Context, fileName string, data []byte) (*ResultadoConteudo, error) {
	rows, err := lerPrimeiraAba(data)
	if err != nil {
		return nil, err
	}

	headerIdx := localizarCabecalho(rows, func(linha string) bool {
		return strings.Contains(linha, "eprocid") || strings.Contains(linha, "eproc_id") || strings.Contains(linha, "eproc id")
	})

	eprocCol, conteudoCol := 0, 1
	for i, h := range rows[headerIdx] {
		hn := strings.ReplaceAll(strings.ToLower(h), " ", "")
		switch {
		case strings.Contains(hn, "eprocid") || strings.Contains(hn, "eproc_id"):
			eprocCol = i
		case strings.Contains(hn, "conteud") || strings.Contains(hn, "ntegra") || strings.Contains(hn, "texto"):
			conteudoCol = i
		}
	}

	resultado := &ResultadoConteudo{}
	for _, row := range rows[headerIdx+1:] {
		eprocID := strings.TrimSpace(celula(row, eprocCol))
		conteudo := strings.TrimSpace(celula(row, conteudoCol))

		// Íntegra com menos de 10 caracteres não tem valor de consulta.
		if eprocID == "" || utf8.RuneCountInString(conteudo) < 10 {
			resultado.Ignorados++
			continue
		}

		found, err := s.modeloRepo.UpdateContent(eprocID, conteudo)
		if err != nil {
			return nil, fmt.Errorf("falha ao gravar íntegra do modelo %s: %w", eprocID, err)
		}
		if found {
			resultado.Atualizados++
		} else {
			resultado.NaoEncontrados++
		}
	}

	log.Infof("[CatalogoService] importação de íntegras de %q: %d atualizados, %d ignorados, %d não encontrados",
		fileName, resultado.Atualizados, resultado.Ignorados, resultado.NaoEncontrados)
	return resultado, nil
}

func (s *catalogoService) ListarModelos(ctx context.Context) ([]model.Modelo, error) {
	return s.modeloRepo.FindAll()
}

func (s *catalogoService) BuscarModelo(ctx context.Context, id uint) (*model.Modelo, error) {
	m, err := s.modeloRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModeloNaoEncontrado
		}
		return nil, err
	}
	return m, nil
}

func (s *catalogoService) AtualizarTags(ctx context.Context, id uint, tags []string) error {
	found, err := s.modeloRepo.UpdateTags(id, tags)
	if err != nil {
		return err
	}
	if !found {
		return ErrModeloNaoEncontrado
	}
	return nil
}

func (s *catalogoService) ReverterTags(ctx context.Context, id uint) error {
	found, err := s.modeloRepo.ResetTags(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrModeloNaoEncontrado
	}
	return nil
}

// lerPrimeiraAba abre a planilha e retorna todas as linhas da primeira aba.
// Planilhas ilegíveis ou com menos de duas linhas são rejeitadas.
func lerPrimeiraAba(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrPlanilhaInvalida
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrPlanilhaInvalida
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrPlanilhaInvalida
	}
	if len(rows) < 2 {
		return nil, ErrPlanilhaInvalida
	}
	return rows, nil
}

// localizarCabecalho varre as primeiras linhas em busca do cabeçalho real,
// comparando o texto da linha em minúsculas com o predicado informado.
func localizarCabecalho(rows [][]string, combina func(string) bool) int {
	limite := len(rows)
	if limite > maxLinhasCabecalho {
		limite = maxLinhasCabecalho
	}
	for i := 0; i < limite; i++ {
		if combina(strings.ToLower(strings.Join(rows[i], " "))) {
			return i
		}
	}
	return 0
}

func celula(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func linhaVazia(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
