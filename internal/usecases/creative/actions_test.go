package creative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractActions(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		expected int
	}{
		{
			name:     "Payload nulo retorna lista vazia",
			payload:  nil,
			expected: 0,
		},
		{
			name:     "String JSON valida é decodificada",
			payload:  `[{"action_type":"purchase","value":"2"},{"action_type":"lead","value":"3"}]`,
			expected: 2,
		},
		{
			name:     "JSON malformado retorna lista vazia sem erro",
			payload:  `{"action_type":`,
			expected: 0,
		},
		{
			name:     "Payload que não é array retorna lista vazia",
			payload:  `{"action_type":"purchase","value":"2"}`,
			expected: 0,
		},
		{
			name: "Payload já estruturado é aceito",
			payload: []map[string]any{
				{"action_type": "purchase", "value": 2.0},
			},
			expected: 1,
		},
		{
			name:     "Entrada sem action_type é ignorada",
			payload:  `[{"value":"2"},{"action_type":"purchase","value":"1"}]`,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := ExtractActions(tt.payload)
			assert.Len(t, actions, tt.expected)
		})
	}
}

func TestExtractActions_Pura(t *testing.T) {
	payload := `[{"action_type":"purchase","value":"2"}]`

	first := ExtractActions(payload)
	second := ExtractActions(payload)

	assert.Equal(t, first, second)
}

func TestExtractActionTotals(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		expected ActionTotals
	}{
		{
			name:    "Família de compra soma em conversões",
			payload: `[{"action_type":"purchase","value":"2"},{"action_type":"offsite_conversion.fb_pixel_purchase","value":"3"}]`,
			expected: ActionTotals{
				Conversions: 5,
			},
		},
		{
			name:    "Registro e carrinho também contam como conversão",
			payload: `[{"action_type":"complete_registration","value":"1"},{"action_type":"add_to_cart","value":"4"}]`,
			expected: ActionTotals{
				Conversions: 5,
			},
		},
		{
			name:    "Leads e mensagens vão para seus próprios totais",
			payload: `[{"action_type":"lead","value":"7"},{"action_type":"onsite_conversion.messaging_conversation_started_7d","value":"2"}]`,
			expected: ActionTotals{
				Leads:           7,
				MessagingStarts: 2,
			},
		},
		{
			name:    "Valor de conversão soma separado",
			payload: `[{"action_type":"offsite_conversion.fb_pixel_purchase_value","value":"150.50"}]`,
			expected: ActionTotals{
				ConversionValue: 150.50,
			},
		},
		{
			name:     "Valor não numérico contribui com zero",
			payload:  `[{"action_type":"purchase","value":"abc"}]`,
			expected: ActionTotals{},
		},
		{
			name:     "Tipos desconhecidos são ignorados",
			payload:  `[{"action_type":"video_view","value":"900"}]`,
			expected: ActionTotals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractActionTotals(tt.payload))
		})
	}
}
