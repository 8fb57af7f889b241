package domain

// LoadingState é o status transitório de um registro durante o
// enriquecimento, chaveado por ad id. Nunca é persistido e é zerado no
// início de cada nova geração de busca.
type LoadingState struct {
	IsLoading    bool   `json:"is_loading"`
	HasError     bool   `json:"has_error"`
	ErrorMessage string `json:"error_message,omitempty"`
}
