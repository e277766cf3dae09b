package classify

import (
	"regexp"
	"strings"
)

// Options configura o classificador. A ingestão no servidor habilita a
// inferência automática de tags; o modo de pré-visualização a desabilita.
type Options struct {
	EnableAutoTags bool
}

// Classification é o resultado derivado de uma linha bruta do catálogo.
type Classification struct {
	Categoria string
	Tags      []string
	CorHex    string
}

// CorPadrao é a cor usada quando nenhuma regra de cor casa.
const CorPadrao = "#FFFFFF"

// CategoriaPadrao é a categoria usada quando a descrição não tem prefixo.
const CategoriaPadrao = "OUTROS"

// categoriaRe reconhece o prefixo de categoria da descrição: uma sequência de
// maiúsculas (acentuadas ou não), espaços e barras, seguida de hífen.
var categoriaRe = regexp.MustCompile(`^([A-ZÀ-Ú\s/]+)\s*-`)

// colorRule associa uma cor hex a uma lista de gatilhos. A primeira regra cujo
// gatilho aparecer na cadeia de busca vence; a ordem da tabela é a precedência.
type colorRule struct {
	hex      string
	triggers []string
}

// Tabela canônica de regras de cor do eproc, em ordem de prioridade. Os
// gatilhos são comparados já normalizados. A variante de pré-visualização do
// sistema antigo usava vocabulário levemente diferente ("Despesas",
// "Competência residual"); esta tabela, a do caminho de ingestão, é a adotada
// em todos os pontos.
var colorRules = []colorRule{
	{hex: "#8CACCC", triggers: []string{"despacho", "distribuição"}},
	{hex: "#EBD992", triggers: []string{"admissibilidade", "preliminar", "prejudicial", "interesse"}},
	{hex: "#C8DEFA", triggers: []string{"nulidade"}},
	{hex: "#ACECA8", triggers: []string{"estrutura"}},
	{hex: "#EFB778", triggers: []string{"locação", "despejo"}},
	{hex: "#F7C5DF", triggers: []string{"honorário", "sucumbência", "ajg", "gratuidade de justiça"}},
	{hex: "#D58381", triggers: []string{"dano", "responsabilidade civil", "sanção"}},
	{hex: "#BB946C", triggers: []string{"execução", "penhora"}},
	{hex: "#E9AA91", triggers: []string{"consumidor", "cdc"}},
	{hex: "#EDEF93", triggers: []string{"corretagem", "representação comercial", "gestão de negócios", "depósito mercantil"}},
}

// autoTagRule infere uma tag a partir de palavras-chave na descrição em
// minúsculas. As regras são independentes entre si, não mutuamente exclusivas.
type autoTagRule struct {
	tag    string
	anyOf  []string
	noneOf []string
}

var autoTagRules = []autoTagRule{
	{tag: "Liminares", anyOf: []string{"liminar", "antecipada", "urgência"}},
	{tag: "Despachos", anyOf: []string{"despacho"}, noneOf: []string{"decisão interlocutória"}},
	{tag: "Decisões Interlocutórias", anyOf: []string{"interlocutória", "tutela"}},
	{tag: "Petição Inicial", anyOf: []string{"petição inicial", "emenda à inicial"}},
	{tag: "Contestação", anyOf: []string{"contestação", "revelia"}},
	{tag: "Execução", anyOf: []string{"execução", "cumprimento de sentença", "penhora", "embargos à execução"}},
	{tag: "Instrução", anyOf: []string{"perícia", "audiência", "ônus da prova"}},
	{tag: "Sentença", anyOf: []string{"sentença"}, noneOf: []string{"nulidade da sentença"}},
	{tag: "Sentença", anyOf: []string{"nulidade"}},
	{tag: "Locação", anyOf: []string{"locação", "despejo"}},
	{tag: "Honorários", anyOf: []string{"honorários"}},
	{tag: "Bancário", anyOf: []string{"bancário", "revisional bancária"}},
	{tag: "Corretagem", anyOf: []string{"corretagem"}},
	{tag: "Representação Comercial", anyOf: []string{"representação comercial"}},
	{tag: "Gestão de Negócios", anyOf: []string{"gestão de negócios"}},
	{tag: "Depósito Mercantil", anyOf: []string{"depósito mercantil"}},
	{tag: "Comissão Mercantil", anyOf: []string{"comissão mercantil"}},
	{tag: "Mandatos", anyOf: []string{"mandato", "procuração"}},
	{tag: "Gratuidade de Justiça", anyOf: []string{"gratuidade", "ajg"}},
	{tag: "Mérito", anyOf: []string{"mérito"}},
	{tag: "Admissibilidade", anyOf: []string{"admissibilidade", "preparo", "deserção", "dialeticidade"}},
}

// Classify deriva categoria, tags e cor de uma linha bruta do catálogo.
// É total: qualquer entrada, inclusive vazia, produz um resultado
// (CategoriaPadrao / CorPadrao / tags vazias).
func Classify(descricao, classificacaoOriginal string, opts Options) Classification {
	categoria := CategoriaPadrao
	if m := categoriaRe.FindStringSubmatch(descricao); m != nil {
		categoria = strings.TrimSpace(m[1])
	}

	tags := splitClassificacao(classificacaoOriginal)
	if opts.EnableAutoTags {
		tags = append(tags, inferAutoTags(descricao)...)
	}
	tags = dedupTags(tags)

	corTerms := make([]string, 0, len(tags)+2)
	corTerms = append(corTerms, categoria)
	corTerms = append(corTerms, tags...)
	corTerms = append(corTerms, truncateRunes(descricao, 60))

	return Classification{
		Categoria: categoria,
		Tags:      tags,
		CorHex:    DetermineColor(corTerms),
	}
}

// DetermineColor aplica a tabela de regras de cor sobre os termos dados.
// Cada termo é normalizado e tudo é concatenado numa única cadeia de busca;
// vence a primeira regra com algum gatilho presente como substring.
func DetermineColor(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, Normalize(t))
	}
	joined := strings.Join(parts, " ")

	for _, rule := range colorRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(joined, Normalize(trigger)) {
				return rule.hex
			}
		}
	}
	return CorPadrao
}

// splitClassificacao quebra o caminho de classificação bruto no separador
// literal " - ", descartando pedaços vazios e preservando a ordem.
func splitClassificacao(classificacao string) []string {
	var tags []string
	for _, piece := range strings.Split(classificacao, " - ") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		tags = append(tags, piece)
	}
	return tags
}

// inferAutoTags avalia as regras de palavra-chave sobre a descrição em minúsculas.
func inferAutoTags(descricao string) []string {
	lower := strings.ToLower(descricao)

	var tags []string
	for _, rule := range autoTagRules {
		if !containsAny(lower, rule.anyOf) {
			continue
		}
		if containsAny(lower, rule.noneOf) {
			continue
		}
		tags = append(tags, rule.tag)
	}
	return tags
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupTags remove duplicatas exatas preservando a primeira ocorrência.
func dedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// truncateRunes corta uma string para no máximo n runas, sem quebrar UTF-8.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
