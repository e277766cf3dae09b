package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// planilha monta um arquivo xlsx em memória com as linhas informadas.
func planilha(t *testing.T, linhas ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &linhas[i]); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestImportarPlanilha_CabecalhoAposLinhaDeMetadados(t *testing.T) {
	repo := &fakeModeloRepo{}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"Relatório de modelos exportado em 01/08/2026"},
		[]interface{}{"Órgão", "Código", "Descrição", "Sigla", "Classificação"},
		[]interface{}{"GabRJL", "m1", "LOCAÇÃO - Texto sobre despejo", "LOC-01", "Locação - Despejo"},
	)

	count, err := svc.ImportarPlanilha(context.Background(), "modelos.xlsx", data)
	if err != nil {
		t.Fatalf("ImportarPlanilha() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, esperava 1", count)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("esperava 1 modelo no upsert, veio %d", len(repo.upserted))
	}

	m := repo.upserted[0]
	if m.EprocID != "m1" || m.Sigla != "LOC-01" || m.Orgao != "GabRJL" {
		t.Fatalf("campos básicos inesperados: %+v", m)
	}
	if m.Categoria != "LOCAÇÃO" {
		t.Fatalf("categoria = %q", m.Categoria)
	}
	if m.CorHex != "#EFB778" {
		t.Fatalf("cor = %q, esperava a cor de locação", m.CorHex)
	}
	if m.ClassificacaoOriginal != "Locação - Despejo" {
		t.Fatalf("classificação original = %q", m.ClassificacaoOriginal)
	}

	temDespejo := false
	for _, tag := range m.UnifiedTags {
		if tag == "despejo" {
			temDespejo = true
		}
	}
	if !temDespejo {
		t.Fatalf("unified_tags sem despejo: %v", m.UnifiedTags)
	}
}

func TestImportarPlanilha_ColunasForaDaOrdemPadrao(t *testing.T) {
	repo := &fakeModeloRepo{}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"Descrição", "Sigla", "Código", "Órgão", "Classificação"},
		[]interface{}{"HONORÁRIOS - Majoração recursal", "HON-01", "m9", "GabRJL", "Honorários"},
	)

	if _, err := svc.ImportarPlanilha(context.Background(), "modelos.xlsx", data); err != nil {
		t.Fatalf("ImportarPlanilha() error: %v", err)
	}

	m := repo.upserted[0]
	if m.EprocID != "m9" || m.Sigla != "HON-01" || m.Descricao != "HONORÁRIOS - Majoração recursal" {
		t.Fatalf("mapeamento de colunas falhou: %+v", m)
	}
}

func TestImportarPlanilha_FallbacksDeIdentificacao(t *testing.T) {
	repo := &fakeModeloRepo{}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"Órgão", "Código", "Descrição", "Sigla", "Classificação"},
		[]interface{}{"", "", "OUTROS - Modelo sem identificação", "", ""},
	)

	if _, err := svc.ImportarPlanilha(context.Background(), "modelos.xlsx", data); err != nil {
		t.Fatalf("ImportarPlanilha() error: %v", err)
	}

	m := repo.upserted[0]
	if !strings.HasPrefix(m.EprocID, "auto-") {
		t.Fatalf("código sintético esperado, veio %q", m.EprocID)
	}
	if m.Sigla != "modelo-0" {
		t.Fatalf("sigla sintética esperada, veio %q", m.Sigla)
	}
	if m.Orgao != "GabRJL" {
		t.Fatalf("órgão padrão esperado, veio %q", m.Orgao)
	}
}

func TestImportarPlanilha_DescartaLinhasVazias(t *testing.T) {
	repo := &fakeModeloRepo{}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"Órgão", "Código", "Descrição", "Sigla", "Classificação"},
		[]interface{}{"GabRJL", "m1", "LOCAÇÃO - Despejo", "LOC-01", "Locação"},
		[]interface{}{"", "", "", "", ""},
		[]interface{}{"GabRJL", "m2", "LOCAÇÃO - Renovatória", "LOC-02", "Locação"},
	)

	count, err := svc.ImportarPlanilha(context.Background(), "modelos.xlsx", data)
	if err != nil {
		t.Fatalf("ImportarPlanilha() error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, esperava 2 (linha vazia descartada)", count)
	}
}

func TestImportarPlanilha_PlanilhaInvalida(t *testing.T) {
	svc := NewCatalogoService(&fakeModeloRepo{})

	// Arquivo que não é xlsx.
	if _, err := svc.ImportarPlanilha(context.Background(), "lixo.xlsx", []byte("não é uma planilha")); !errors.Is(err, ErrPlanilhaInvalida) {
		t.Fatalf("esperava ErrPlanilhaInvalida, veio %v", err)
	}

	// Só o cabeçalho, nenhum dado.
	data := planilha(t, []interface{}{"Órgão", "Código", "Descrição", "Sigla", "Classificação"})
	if _, err := svc.ImportarPlanilha(context.Background(), "vazia.xlsx", data); !errors.Is(err, ErrPlanilhaInvalida) {
		t.Fatalf("esperava ErrPlanilhaInvalida, veio %v", err)
	}
}

func TestImportarConteudo(t *testing.T) {
	repo := &fakeModeloRepo{existentes: map[string]bool{"m1": true}}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"eprocId", "conteudo"},
		[]interface{}{"m1", "Texto íntegro do modelo de despejo por falta de pagamento"},
		[]interface{}{"m404", "Conteúdo de modelo que não existe no registro"},
		[]interface{}{"m1", "curto"},
		[]interface{}{"", "Conteúdo sem identificador de modelo, deve ser ignorado"},
	)

	resultado, err := svc.ImportarConteudo(context.Background(), "integras.xlsx", data)
	if err != nil {
		t.Fatalf("ImportarConteudo() error: %v", err)
	}
	if resultado.Atualizados != 1 || resultado.NaoEncontrados != 1 || resultado.Ignorados != 2 {
		t.Fatalf("resultado inesperado: %+v", resultado)
	}
	if !strings.HasPrefix(repo.conteudos["m1"], "Texto íntegro") {
		t.Fatalf("conteúdo gravado inesperado: %q", repo.conteudos["m1"])
	}
}

func TestImportarConteudo_ColunasPorNome(t *testing.T) {
	repo := &fakeModeloRepo{existentes: map[string]bool{"m1": true}}
	svc := NewCatalogoService(repo)

	data := planilha(t,
		[]interface{}{"Íntegra do documento", "eproc id"},
		[]interface{}{"Texto íntegro localizado pela coluna de íntegra", "m1"},
	)

	resultado, err := svc.ImportarConteudo(context.Background(), "integras.xlsx", data)
	if err != nil {
		t.Fatalf("ImportarConteudo() error: %v", err)
	}
	if resultado.Atualizados != 1 {
		t.Fatalf("resultado inesperado: %+v", resultado)
	}
}

func TestBuscarModelo_NaoEncontrado(t *testing.T) {
	svc := NewCatalogoService(&fakeModeloRepo{})

	if _, err := svc.BuscarModelo(context.Background(), 99); !errors.Is(err, ErrModeloNaoEncontrado) {
		t.Fatalf("esperava ErrModeloNaoEncontrado, veio %v", err)
	}
}

func TestAtualizarTags(t *testing.T) {
	repo := &fakeModeloRepo{idConhecidos: map[uint]bool{1: true}}
	svc := NewCatalogoService(repo)

	if err := svc.AtualizarTags(context.Background(), 1, []string{"Custom"}); err != nil {
		t.Fatalf("AtualizarTags() error: %v", err)
	}
	if len(repo.tagsPorID[1]) != 1 || repo.tagsPorID[1][0] != "Custom" {
		t.Fatalf("tags gravadas: %v", repo.tagsPorID[1])
	}

	if err := svc.AtualizarTags(context.Background(), 99, []string{"Custom"}); !errors.Is(err, ErrModeloNaoEncontrado) {
		t.Fatalf("esperava ErrModeloNaoEncontrado, veio %v", err)
	}
}

func TestReverterTags(t *testing.T) {
	repo := &fakeModeloRepo{idConhecidos: map[uint]bool{1: true}}
	svc := NewCatalogoService(repo)

	if err := svc.ReverterTags(context.Background(), 1); err != nil {
		t.Fatalf("ReverterTags() error: %v", err)
	}
	if len(repo.resetados) != 1 || repo.resetados[0] != 1 {
		t.Fatalf("resetados: %v", repo.resetados)
	}

	if err := svc.ReverterTags(context.Background(), 99); !errors.Is(err, ErrModeloNaoEncontrado) {
		t.Fatalf("esperava ErrModeloNaoEncontrado, veio %v", err)
	}
}
