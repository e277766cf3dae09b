package service

import (
	"context"
	"sort"
	"strings"

	"github.com/renanbrackmann-glitch/modelfinder/internal/classify"
	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/internal/repository"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// SearchService filtra o catálogo de modelos por texto livre e por tags.
type SearchService interface {
	// Buscar aplica os filtros sobre um snapshot único do catálogo. Com
	// consulta vazia e nenhuma tag selecionada retorna lista vazia.
	Buscar(ctx context.Context, query string, tags []string) ([]model.Modelo, error)
	// IndiceDeTags retorna as tags unificadas e as categorias presentes no
	// catálogo, ambas ordenadas, com seus nomes de exibição.
	IndiceDeTags(ctx context.Context) (model.TagIndex, error)
}

type searchService struct {
	modeloRepo repository.ModeloRepository
}

func NewSearchService(modeloRepo repository.ModeloRepository) SearchService {
	return &searchService{modeloRepo: modeloRepo}
}

func (s *searchService) Buscar(ctx context.Context, query string, tags []string) ([]model.Modelo, error) {
	modelos, err := s.modeloRepo.FindAll()
	if err != nil {
		return nil, err
	}
	resultado := FiltrarModelos(modelos, query, tags)
	log.Infof("[SearchService] busca query=%q tags=%v: %d de %d modelos", query, tags, len(resultado), len(modelos))
	return resultado, nil
}

func (s *searchService) IndiceDeTags(ctx context.Context) (model.TagIndex, error) {
	modelos, err := s.modeloRepo.FindAll()
	if err != nil {
		return model.TagIndex{}, err
	}
	return MontarIndiceDeTags(modelos), nil
}

// FiltrarModelos aplica os dois filtros da busca, preservando a ordem do
// catálogo recebido:
//
//   - tags: conjuntivo; o modelo precisa conter TODAS as tags selecionadas
//     (comparadas na forma normalizada) entre as suas tags unificadas;
//   - query: substring normalizada sobre descrição, sigla ou qualquer tag
//     unificada.
//
// Sem consulta e sem tags o resultado é vazio: a tela inicial não lista o
// catálogo inteiro.
func FiltrarModelos(modelos []model.Modelo, query string, tags []string) []model.Modelo {
	queryNorm := classify.Normalize(query)
	tagsNorm := classify.NormalizeAll(tags)

	resultado := make([]model.Modelo, 0)
	if queryNorm == "" && len(tagsNorm) == 0 {
		return resultado
	}

	for _, m := range modelos {
		if !contemTodas(m.UnifiedTags, tagsNorm) {
			continue
		}
		if queryNorm != "" && !combinaComTexto(m, queryNorm) {
			continue
		}
		resultado = append(resultado, m)
	}
	return resultado
}

func contemTodas(unified, selecionadas []string) bool {
	for _, tag := range selecionadas {
		achou := false
		for _, u := range unified {
			if u == tag {
				achou = true
				break
			}
		}
		if !achou {
			return false
		}
	}
	return true
}

func combinaComTexto(m model.Modelo, queryNorm string) bool {
	if strings.Contains(classify.Normalize(m.Descricao), queryNorm) {
		return true
	}
	if strings.Contains(classify.Normalize(m.Sigla), queryNorm) {
		return true
	}
	for _, tag := range m.UnifiedTags {
		if strings.Contains(tag, queryNorm) {
			return true
		}
	}
	return false
}

// MontarIndiceDeTags monta o índice do catálogo: as tags unificadas de cada
// modelo e, em lista separada, as categorias. A primeira grafia encontrada de
// cada valor vira o nome de exibição; as duas listas saem ordenadas pelo
// valor normalizado.
func MontarIndiceDeTags(modelos []model.Modelo) model.TagIndex {
	tags := make(map[string]*model.TagEntry)
	categorias := make(map[string]*model.TagEntry)

	for _, m := range modelos {
		if valor := classify.Normalize(m.Categoria); valor != "" {
			entry, ok := categorias[valor]
			if !ok {
				entry = &model.TagEntry{Valor: valor, Exibicao: strings.TrimSpace(m.Categoria)}
				categorias[valor] = entry
			}
			entry.Total++
		}

		vistas := make(map[string]bool)
		for _, valor := range m.UnifiedTags {
			if valor == "" || vistas[valor] {
				continue
			}
			vistas[valor] = true

			entry, ok := tags[valor]
			if !ok {
				entry = &model.TagEntry{Valor: valor, Exibicao: exibicaoDaTag(m, valor)}
				tags[valor] = entry
			}
			entry.Total++
		}
	}

	return model.TagIndex{
		Tags:       entradasOrdenadas(tags),
		Categorias: entradasOrdenadas(categorias),
	}
}

// exibicaoDaTag procura entre a categoria e as tags do modelo o termo original
// cuja forma normalizada é a tag unificada. Sem correspondência (tags geradas
// pelo classificador, por exemplo) a própria forma normalizada é exibida.
func exibicaoDaTag(m model.Modelo, valor string) string {
	for _, termo := range append([]string{m.Categoria}, m.Tags...) {
		if classify.Normalize(termo) == valor {
			return strings.TrimSpace(termo)
		}
	}
	return valor
}

func entradasOrdenadas(indice map[string]*model.TagEntry) []model.TagEntry {
	resultado := make([]model.TagEntry, 0, len(indice))
	for _, entry := range indice {
		resultado = append(resultado, *entry)
	}
	sort.Slice(resultado, func(i, j int) bool { return resultado[i].Valor < resultado[j].Valor })
	return resultado
}
