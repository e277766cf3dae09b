package classify

import (
	"testing"
)

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func TestClassify_Locacao(t *testing.T) {
	got := Classify("LOCAÇÃO - Texto sobre despejo", "Locação - Despejo", Options{EnableAutoTags: true})

	if got.Categoria != "LOCAÇÃO" {
		t.Errorf("Categoria = %q, esperava %q", got.Categoria, "LOCAÇÃO")
	}
	if !containsTag(got.Tags, "Locação") || !containsTag(got.Tags, "Despejo") {
		t.Errorf("Tags = %v, esperava conter Locação e Despejo", got.Tags)
	}
	if got.CorHex != "#EFB778" {
		t.Errorf("CorHex = %q, esperava %q", got.CorHex, "#EFB778")
	}
}

func TestClassify_EntradaVazia(t *testing.T) {
	got := Classify("", "", Options{EnableAutoTags: true})

	if got.Categoria != CategoriaPadrao {
		t.Errorf("Categoria = %q, esperava %q", got.Categoria, CategoriaPadrao)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, esperava vazio", got.Tags)
	}
	if got.CorHex != CorPadrao {
		t.Errorf("CorHex = %q, esperava %q", got.CorHex, CorPadrao)
	}
}

func TestClassify_SemPrefixoDeCategoria(t *testing.T) {
	got := Classify("texto sem prefixo de categoria", "", Options{})
	if got.Categoria != "OUTROS" {
		t.Errorf("Categoria = %q, esperava OUTROS", got.Categoria)
	}
}

func TestClassify_CategoriaComBarraEAcento(t *testing.T) {
	got := Classify("AJG/HONORÁRIOS - deferimento de gratuidade", "Gratuidade de Justiça", Options{})
	if got.Categoria != "AJG/HONORÁRIOS" {
		t.Errorf("Categoria = %q, esperava AJG/HONORÁRIOS", got.Categoria)
	}
}

func TestClassify_TagsBasePreservamOrdem(t *testing.T) {
	got := Classify("", "Admissibilidade - Cabimento - Distribuição - Execução", Options{})
	want := []string{"Admissibilidade", "Cabimento", "Distribuição", "Execução"}
	if len(got.Tags) != len(want) {
		t.Fatalf("Tags = %v, esperava %v", got.Tags, want)
	}
	for i := range want {
		if got.Tags[i] != want[i] {
			t.Fatalf("Tags = %v, esperava %v", got.Tags, want)
		}
	}
}

// As regras de inferência são independentes: a mesma descrição pode produzir
// várias tags automáticas, sem duplicar as que já vieram da classificação.
func TestClassify_AutoTags(t *testing.T) {
	got := Classify(
		"LOCAÇÃO - Liminar de despejo e requisitos do art 59 da Lei 8245/91",
		"Estrutura - Despejo - Locação - LIMINAR",
		Options{EnableAutoTags: true},
	)

	if !containsTag(got.Tags, "Liminares") {
		t.Errorf("esperava tag automática Liminares em %v", got.Tags)
	}
	if !containsTag(got.Tags, "Locação") {
		t.Errorf("esperava tag Locação em %v", got.Tags)
	}
	// "Locação" veio da classificação e também casaria na inferência; não
	// pode aparecer duas vezes.
	count := 0
	for _, tag := range got.Tags {
		if tag == "Locação" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("tag Locação duplicada: %v", got.Tags)
	}
}

func TestClassify_AutoTagComExclusao(t *testing.T) {
	// "despacho" sem "decisão interlocutória" infere Despachos...
	got := Classify("DESPACHO - intimação das partes para manifestação", "", Options{EnableAutoTags: true})
	if !containsTag(got.Tags, "Despachos") {
		t.Errorf("esperava Despachos em %v", got.Tags)
	}

	// ...mas a presença de "decisão interlocutória" bloqueia a regra.
	got = Classify("despacho convertido em decisão interlocutória", "", Options{EnableAutoTags: true})
	if containsTag(got.Tags, "Despachos") {
		t.Errorf("não esperava Despachos em %v", got.Tags)
	}
}

func TestClassify_SemAutoTags(t *testing.T) {
	got := Classify("LOCAÇÃO - Liminar de despejo", "Locação", Options{EnableAutoTags: false})
	if containsTag(got.Tags, "Liminares") {
		t.Errorf("modo sem inferência não deveria acrescentar Liminares: %v", got.Tags)
	}
}

func TestDetermineColor_PrecedenciaDaTabela(t *testing.T) {
	// "despacho" (regra 1) e "execução" (regra 8) presentes: vence a primeira.
	if got := DetermineColor([]string{"Despacho", "Execução"}); got != "#8CACCC" {
		t.Errorf("DetermineColor = %q, esperava #8CACCC", got)
	}
	// A ordem dos termos de entrada não importa, somente a ordem das regras.
	if got := DetermineColor([]string{"Execução", "Despacho"}); got != "#8CACCC" {
		t.Errorf("DetermineColor = %q, esperava #8CACCC", got)
	}
}

func TestDetermineColor_GatilhosNormalizados(t *testing.T) {
	cases := []struct {
		terms []string
		want  string
	}{
		{[]string{"NULIDADE DA SENTENÇA"}, "#C8DEFA"},
		{[]string{"honorario"}, "#F7C5DF"},
		{[]string{"Gratuidade de Justiça"}, "#F7C5DF"},
		{[]string{"Responsabilidade Civil"}, "#D58381"},
		{[]string{"penhora"}, "#BB946C"},
		{[]string{"CDC"}, "#E9AA91"},
		{[]string{"Gestão de Negócios"}, "#EDEF93"},
		{[]string{"sem gatilho algum"}, CorPadrao},
		{nil, CorPadrao},
	}
	for _, c := range cases {
		if got := DetermineColor(c.terms); got != c.want {
			t.Errorf("DetermineColor(%v) = %q, esperava %q", c.terms, got, c.want)
		}
	}
}

// A cor considera também os primeiros 60 caracteres da descrição, não só
// categoria e tags.
func TestClassify_CorUsaPrefixoDaDescricao(t *testing.T) {
	got := Classify("OUTROS ASSUNTOS - caso com penhora de valores", "", Options{})
	if got.CorHex != "#BB946C" {
		t.Errorf("CorHex = %q, esperava #BB946C", got.CorHex)
	}
}
