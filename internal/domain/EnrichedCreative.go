package domain

import (
	"time"
)

// EnrichedCreative é a unidade sobre a qual o resto do sistema opera:
// métricas agregadas + mídia + nomes + status + score de IA + tags de uma
// entidade. A chave de identidade é o ad id.
type EnrichedCreative struct {
	Creative     *CreativeMedia  `json:"creative"`
	DisplayName  string          `json:"display_name"`
	CampaignName string          `json:"campaign_name"`
	AdsetName    string          `json:"adset_name"`
	CampaignID   string          `json:"campaign_id"`
	AdsetID      string          `json:"adset_id"`
	AccountID    string          `json:"account_id"`
	Status       string          `json:"status"`
	Metrics      DerivedMetrics  `json:"metrics"`
	DailyMetrics []DailySnapshot `json:"daily_metrics"`
	AIScore      *float64        `json:"ai_score,omitempty"`
	Tags         []string        `json:"tags"`
}

// AdID retorna a chave de identidade do registro.
func (e *EnrichedCreative) AdID() string {
	if e.Creative == nil {
		return ""
	}
	return e.Creative.AdID
}

// LastActivity retorna a data do snapshot diário mais recente. A série é
// mantida ordenada por data ascendente pelo agregador.
func (e *EnrichedCreative) LastActivity() time.Time {
	if len(e.DailyMetrics) == 0 {
		return time.Time{}
	}
	return e.DailyMetrics[len(e.DailyMetrics)-1].Date
}
