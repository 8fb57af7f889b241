package domain

import (
	"time"

	"github.com/vfg2006/creative-insights-api/pkg/utils"
)

// DailySnapshot é um ponto da série diária usada para renderizar tendências.
type DailySnapshot struct {
	Date        time.Time `json:"date"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Spend       float64   `json:"spend"`
	CTR         float64   `json:"ctr"`
	CPC         float64   `json:"cpc"`
	Conversions float64   `json:"conversions"`
}

// AggregatedMetrics acumula os contadores brutos de uma entidade somados
// sobre todas as suas InsightRows. Campos derivados nunca são armazenados
// aqui; use Derived().
type AggregatedMetrics struct {
	EntityID        string          `json:"entity_id"`
	Impressions     int             `json:"impressions"`
	Clicks          int             `json:"clicks"`
	Spend           float64         `json:"spend"`
	Reach           int             `json:"reach"`
	Conversions     float64         `json:"conversions"`
	ConversionValue float64         `json:"conversion_value"`
	Leads           float64         `json:"leads"`
	MessagingStarts float64         `json:"messaging_starts"`
	Daily           []DailySnapshot `json:"daily"`
}

// DerivedMetrics é a visão final por entidade: contadores brutos mais as
// razões calculadas. Divisão por zero sempre resulta em 0.
type DerivedMetrics struct {
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	Spend           float64 `json:"spend"`
	Reach           int     `json:"reach"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	Leads           float64 `json:"leads"`
	MessagingStarts float64 `json:"messaging_starts"`
	CTR             float64 `json:"ctr"`
	CPC             float64 `json:"cpc"`
	CPM             float64 `json:"cpm"`
	ROAS            float64 `json:"roas"`
	Frequency       float64 `json:"frequency"`
}

// Derived calcula as métricas derivadas a partir dos contadores acumulados.
func (m *AggregatedMetrics) Derived() DerivedMetrics {
	d := DerivedMetrics{
		Impressions:     m.Impressions,
		Clicks:          m.Clicks,
		Spend:           utils.RoundWithTwoDecimalPlace(m.Spend),
		Reach:           m.Reach,
		Conversions:     m.Conversions,
		ConversionValue: m.ConversionValue,
		Leads:           m.Leads,
		MessagingStarts: m.MessagingStarts,
	}

	if m.Impressions > 0 {
		d.CTR = float64(m.Clicks) / float64(m.Impressions) * 100
		d.CPM = m.Spend / float64(m.Impressions) * 1000
	}

	if m.Clicks > 0 {
		d.CPC = m.Spend / float64(m.Clicks)
	}

	if m.Spend > 0 {
		d.ROAS = m.ConversionValue / m.Spend
	}

	if m.Reach > 0 {
		d.Frequency = utils.RoundWithTwoDecimalPlace(float64(m.Impressions) / float64(m.Reach))
	}

	return d
}
