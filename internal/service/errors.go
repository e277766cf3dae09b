// Package service concentra as regras de negócio do catálogo de modelos.
package service

import "errors"

// Erros sentinela traduzidos pelos handlers em respostas HTTP.
var (
	// ErrModeloNaoEncontrado indica que o id informado não existe no registro.
	ErrModeloNaoEncontrado = errors.New("modelo não encontrado")
	// ErrPlanilhaInvalida indica planilha vazia ou sem dados reconhecíveis.
	ErrPlanilhaInvalida = errors.New("planilha vazia ou formato inválido")
	// ErrExtracaoFalhou indica que o PDF não rendeu texto utilizável
	// (arquivo protegido ou digitalizado sem OCR).
	ErrExtracaoFalhou = errors.New("não foi possível extrair texto do PDF")
	// ErrRespostaIAInvalida indica que a resposta do modelo de linguagem não
	// continha um objeto JSON interpretável.
	ErrRespostaIAInvalida = errors.New("resposta da IA em formato inválido")
	// ErrSenhaIncorreta indica falha na verificação da senha de administrador.
	ErrSenhaIncorreta = errors.New("senha de administrador incorreta")
	// ErrSenhaFraca indica nova senha com menos de 6 caracteres.
	ErrSenhaFraca = errors.New("a nova senha deve ter pelo menos 6 caracteres")
)
