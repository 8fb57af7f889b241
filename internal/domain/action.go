package domain

// Action representa um par (tipo, valor) já validado, extraído do payload
// bruto de ações do Meta. O payload nunca circula além da extração.
type Action struct {
	Type  string  `json:"action_type"`
	Value float64 `json:"value"`
}
