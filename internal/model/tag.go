package model

// TagEntry é uma entrada do índice de tags do catálogo: o valor normalizado
// usado nos filtros e o nome de exibição com a grafia original.
type TagEntry struct {
	Valor    string `json:"valor"`
	Exibicao string `json:"exibicao"`
	Total    int    `json:"total"`
}

// TagIndex é o índice completo do catálogo: as tags unificadas e, em lista
// separada, as categorias. Ambas ordenadas pelo valor normalizado.
type TagIndex struct {
	Tags       []TagEntry `json:"tags"`
	Categorias []TagEntry `json:"categorias"`
}
