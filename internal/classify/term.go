// Package classify concentra a lógica de domínio do catálogo: normalização de
// termos, extração de categoria e tags e a classificação de cor dos modelos.
package classify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicaliza um termo livre para comparação: minúsculas,
// decomposição Unicode (NFD), remoção dos diacríticos combinantes
// (U+0300–U+036F) e trim. Total e idempotente; vazio produz vazio.
//
// A normalização é com perda e sem caminho de volta: o nome de exibição de um
// termo normalizado é registrado à parte (ver TagIndex no service).
func Normalize(term string) string {
	decomposed := norm.NFD.String(strings.ToLower(term))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r >= 0x0300 && r <= 0x036F {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// NormalizeAll normaliza cada termo e deduplica preservando a primeira ocorrência.
func NormalizeAll(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := Normalize(t)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// UnifyTags monta as tags unificadas de um modelo: a união normalizada e
// deduplicada da categoria com as tags efetivas.
func UnifyTags(categoria string, tags []string) []string {
	terms := make([]string, 0, len(tags)+1)
	terms = append(terms, categoria)
	terms = append(terms, tags...)
	return NormalizeAll(terms)
}
