package creative

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Famílias de action_type da Meta que alimentam cada total nomeado.
var (
	purchaseActionTypes = map[string]bool{
		"purchase":                             true,
		"omni_purchase":                        true,
		"offsite_conversion.fb_pixel_purchase": true,
		"onsite_conversion.purchase":           true,
	}

	registrationActionTypes = map[string]bool{
		"complete_registration":                             true,
		"offsite_conversion.fb_pixel_complete_registration": true,
	}

	addToCartActionTypes = map[string]bool{
		"add_to_cart":                             true,
		"omni_add_to_cart":                        true,
		"offsite_conversion.fb_pixel_add_to_cart": true,
	}

	leadActionTypes = map[string]bool{
		"lead":                             true,
		"offsite_conversion.fb_pixel_lead": true,
		"onsite_conversion.lead_grouped":   true,
	}

	messagingActionTypes = map[string]bool{
		"onsite_conversion.messaging_conversation_started_7d": true,
		"onsite_conversion.messaging_first_reply":             true,
		"onsite_conversion.total_messaging_connection":        true,
	}

	conversionValueActionTypes = map[string]bool{
		"purchase_value":                             true,
		"omni_purchase_value":                        true,
		"offsite_conversion.fb_pixel_purchase_value": true,
	}
)

// ActionTotals são os totais nomeados extraídos do payload bruto de ações.
type ActionTotals struct {
	Conversions     float64
	ConversionValue float64
	Leads           float64
	MessagingStarts float64
}

// rawAction espelha o formato solto da Meta: value pode vir como string,
// número ou faltar.
type rawAction struct {
	ActionType string `json:"action_type"`
	Value      any    `json:"value"`
}

// ExtractActions valida o payload bruto de ações e o converte para a lista
// tipada. Payload ausente, malformado ou que não é um array resulta em lista
// vazia, nunca em erro. Função pura: mesma entrada, mesma saída.
func ExtractActions(payload any) []domain.Action {
	raws := decodeRawActions(payload)
	if len(raws) == 0 {
		return nil
	}

	actions := make([]domain.Action, 0, len(raws))
	for _, raw := range raws {
		if raw.ActionType == "" {
			continue
		}
		actions = append(actions, domain.Action{
			Type:  raw.ActionType,
			Value: actionValueToFloat(raw.Value),
		})
	}

	return actions
}

// ExtractActionTotals soma os valores das ações por família de action_type.
func ExtractActionTotals(payload any) ActionTotals {
	totals := ActionTotals{}

	for _, action := range ExtractActions(payload) {
		switch {
		case purchaseActionTypes[action.Type],
			registrationActionTypes[action.Type],
			addToCartActionTypes[action.Type]:
			totals.Conversions += action.Value
		case leadActionTypes[action.Type]:
			totals.Leads += action.Value
		case messagingActionTypes[action.Type]:
			totals.MessagingStarts += action.Value
		case conversionValueActionTypes[action.Type]:
			totals.ConversionValue += action.Value
		}
	}

	return totals
}

func decodeRawActions(payload any) []rawAction {
	if payload == nil {
		return nil
	}

	var encoded []byte

	switch v := payload.(type) {
	case string:
		encoded = []byte(v)
	case []byte:
		encoded = v
	default:
		// Payload já estruturado (ex.: decodificado antes do repositório);
		// reserializar é o caminho mais simples para validar o formato.
		reencoded, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		encoded = reencoded
	}

	var raws []rawAction
	if err := json.Unmarshal(encoded, &raws); err != nil {
		return nil
	}

	return raws
}

// actionValueToFloat converte o value solto da Meta. Valores não numéricos
// contribuem com 0.
func actionValueToFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
