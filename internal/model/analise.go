package model

// Títulos das quatro seções fixas da análise de recurso.
const (
	SecaoEstrutura        = "ESTRUTURA"
	SecaoAdmissibilidade  = "ADMISSIBILIDADE"
	SecaoPreliminarMerito = "PRELIMINARES E MÉRITO"
	SecaoDispositivo      = "DISPOSITIVO"
)

// Forças de correspondência válidas para uma questão.
const (
	ForcaDireto  = "direto"
	ForcaParcial = "parcial"
	ForcaAusente = "ausente"
)

// AnaliseRecurso é o resultado efêmero (não persistido) da análise de um
// recurso em PDF pelo classificador externo, já hidratado com os modelos.
type AnaliseRecurso struct {
	TipoRecurso      string         `json:"tipoRecurso"`
	Recorrente       string         `json:"recorrente"`
	Recorrido        string         `json:"recorrido"`
	DecisaoRecorrida string         `json:"decisaoRecorrida"`
	Secoes           []SecaoAnalise `json:"secoes"`
}

// SecaoAnalise é uma das quatro seções fixas da taxonomia de análise.
type SecaoAnalise struct {
	Titulo   string           `json:"titulo"`
	Questoes []QuestaoAnalise `json:"questoes"`
}

// QuestaoAnalise é uma questão jurídica identificada no recurso, com os
// modelos candidatos apontados pelo classificador externo.
type QuestaoAnalise struct {
	Descricao string `json:"descricao"`
	// ModeloIDs são os IDs de banco sugeridos pelo classificador externo.
	// Vazio quando Forca é "ausente", por contrato do classificador.
	ModeloIDs  []uint `json:"modeloIds"`
	Forca      string `json:"forca"`
	Observacao string `json:"observacao,omitempty"`
	// Modelos são os registros completos resolvidos a partir de ModeloIDs;
	// IDs sem correspondência no catálogo são descartados silenciosamente.
	Modelos []Modelo `json:"modelos"`
}
