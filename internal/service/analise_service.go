package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/internal/repository"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/extract"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/llm"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/storage"
)

// Texto extraído com menos caracteres que isso indica PDF protegido ou
// digitalizado sem OCR.
const minCaracteresExtraidos = 50

// Limite de caracteres do recurso enviados no prompt.
const maxCaracteresPrompt = 12000

// AnaliseService analisa um recurso em PDF contra o catálogo de modelos.
type AnaliseService interface {
	AnalisarPDF(ctx context.Context, fileName string, data []byte) (*model.AnaliseRecurso, error)
}

type analiseService struct {
	modeloRepo repository.ModeloRepository
	extractor  extract.Client
	llmClient  llm.Client
}

func NewAnaliseService(modeloRepo repository.ModeloRepository, extractor extract.Client, llmClient llm.Client) AnaliseService {
	return &analiseService{
		modeloRepo: modeloRepo,
		extractor:  extractor,
		llmClient:  llmClient,
	}
}

func (s *analiseService) AnalisarPDF(ctx context.Context, fileName string, data []byte) (*model.AnaliseRecurso, error) {
	texto, err := s.extractor.ExtractText(ctx, bytes.NewReader(data), fileName)
	if err != nil {
		return nil, fmt.Errorf("falha na extração de texto: %w", err)
	}
	texto = strings.TrimSpace(texto)
	if utf8.RuneCountInString(texto) < minCaracteresExtraidos {
		return nil, ErrExtracaoFalhou
	}

	// Um único snapshot do catálogo alimenta o prompt e a hidratação, para
	// que os IDs citados pela IA resolvam contra a mesma base.
	modelos, err := s.modeloRepo.FindAll()
	if err != nil {
		return nil, err
	}

	prompt := montarPrompt(modelos, texto)
	resposta, err := s.llmClient.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("falha na análise por IA: %w", err)
	}

	bruto, ok := extrairJSON(resposta)
	if !ok {
		log.Warnf("[AnaliseService] resposta da IA sem JSON: %.200s", resposta)
		return nil, ErrRespostaIAInvalida
	}

	var analise model.AnaliseRecurso
	if err := json.Unmarshal([]byte(bruto), &analise); err != nil {
		log.Warnf("[AnaliseService] JSON da IA não interpretável: %v", err)
		return nil, ErrRespostaIAInvalida
	}

	hidratarModelos(&analise, modelos)

	// Arquivamento melhor-esforço do PDF analisado.
	objeto := fmt.Sprintf("recursos/%d-%s", time.Now().Unix(), fileName)
	if err := storage.Archive(ctx, objeto, data, "application/pdf"); err != nil {
		log.Warnf("falha ao arquivar PDF %q: %v", fileName, err)
	}

	return &analise, nil
}

// montarPrompt monta a instrução enviada à IA: o catálogo completo, uma
// linha por modelo, seguido do texto do recurso e do contrato de resposta.
func montarPrompt(modelos []model.Modelo, texto string) string {
	var catalogo strings.Builder
	for i, m := range modelos {
		if i > 0 {
			catalogo.WriteByte('\n')
		}
		fmt.Fprintf(&catalogo, "ID:%d | SIGLA:%s | CATEGORIA:%s | DESC:%s | TAGS:%s",
			m.ID, m.Sigla, m.Categoria, m.Descricao, strings.Join(m.Tags, ", "))
	}

	return fmt.Sprintf(`Você é um assistente especializado em análise de recursos jurídicos para um gabinete de desembargador no TJRS.

Sua tarefa: ler o texto do recurso abaixo e identificar todos os modelos relevantes da base de dados do gabinete.

## BASE DE MODELOS DO GABINETE
Cada linha tem: ID | SIGLA | CATEGORIA | DESCRIÇÃO | TAGS
%s

## TEXTO DO RECURSO
%s

## INSTRUÇÕES

Analise o recurso e identifique TODAS as questões jurídicas que precisarão ser enfrentadas no voto/decisão. Para cada questão, busque os modelos relevantes da base acima.

Organize em 4 seções:
1. ESTRUTURA - relatórios, esqueletos de voto, estrutura processual
2. ADMISSIBILIDADE - cabimento, preparo, dialeticidade, interesse recursal
3. PRELIMINARES_E_MERITO - teses jurídicas centrais do recurso
4. DISPOSITIVO - honorários, juros, custas, prequestionamento

Para cada questão identificada, liste os IDs dos modelos aplicáveis (pode ser [] se nenhum servir).

RESPONDA APENAS com JSON válido neste formato exato:
{
  "tipoRecurso": "string",
  "recorrente": "string",
  "recorrido": "string",
  "decisaoRecorrida": "string",
  "secoes": [
    {
      "titulo": "ESTRUTURA",
      "questoes": [
        {
          "descricao": "descrição da questão",
          "modeloIds": [1, 2],
          "forca": "direto",
          "observacao": "opcional"
        }
      ]
    },
    {
      "titulo": "ADMISSIBILIDADE",
      "questoes": []
    },
    {
      "titulo": "PRELIMINARES E MÉRITO",
      "questoes": []
    },
    {
      "titulo": "DISPOSITIVO",
      "questoes": []
    }
  ]
}

Valores válidos para "forca": "direto" (match exato), "parcial" (match parcial), "ausente" (sem modelo disponível).
Se forca for "ausente", modeloIds deve ser [].
Seja exaustivo mas preciso. Não invente modelos — use apenas IDs que existem na base acima.`,
		catalogo.String(), truncarRunas(texto, maxCaracteresPrompt))
}

// extrairJSON devolve o primeiro objeto JSON balanceado encontrado na
// resposta. Modelos de linguagem costumam cercar o JSON de prosa ou de
// cercas de código mesmo instruídos a não fazê-lo.
func extrairJSON(resposta string) (string, bool) {
	inicio := strings.IndexByte(resposta, '{')
	if inicio < 0 {
		return "", false
	}

	profundidade := 0
	emString := false
	escapado := false
	for i := inicio; i < len(resposta); i++ {
		c := resposta[i]
		if emString {
			switch {
			case escapado:
				escapado = false
			case c == '\\':
				escapado = true
			case c == '"':
				emString = false
			}
			continue
		}
		switch c {
		case '"':
			emString = true
		case '{':
			profundidade++
		case '}':
			profundidade--
			if profundidade == 0 {
				return resposta[inicio : i+1], true
			}
		}
	}
	return "", false
}

// hidratarModelos resolve os IDs citados pela IA contra o snapshot do
// catálogo. IDs desconhecidos (inventados ou removidos) são descartados em
// silêncio.
func hidratarModelos(analise *model.AnaliseRecurso, modelos []model.Modelo) {
	porID := make(map[uint]model.Modelo, len(modelos))
	for _, m := range modelos {
		porID[m.ID] = m
	}

	for si := range analise.Secoes {
		for qi := range analise.Secoes[si].Questoes {
			questao := &analise.Secoes[si].Questoes[qi]
			questao.Modelos = make([]model.Modelo, 0, len(questao.ModeloIDs))
			for _, id := range questao.ModeloIDs {
				if m, ok := porID[id]; ok {
					questao.Modelos = append(questao.Modelos, m)
				}
			}
		}
	}
}

func truncarRunas(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runas := []rune(s)
	return string(runas[:max])
}
