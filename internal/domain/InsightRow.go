package domain

import (
	"time"
)

type ReportingLevel string

const (
	ReportingLevelAd       ReportingLevel = "ad"
	ReportingLevelAdset    ReportingLevel = "adset"
	ReportingLevelCampaign ReportingLevel = "campaign"
)

// InsightRow representa um dia de métricas brutas de uma entidade em um
// único nível de relatório. Produzida pelo banco, somente leitura.
type InsightRow struct {
	EntityID    string         `json:"entity_id"`
	CampaignID  string         `json:"campaign_id"`
	AdsetID     string         `json:"adset_id"`
	AccountID   string         `json:"account_id"`
	Level       ReportingLevel `json:"level"`
	Date        time.Time      `json:"date"`
	Impressions int            `json:"impressions"`
	Clicks      int            `json:"clicks"`
	Spend       float64        `json:"spend"`
	Reach       int            `json:"reach"`
	CTR         float64        `json:"ctr"`
	CPC         float64        `json:"cpc"`
	CPM         float64        `json:"cpm"`

	// Actions carrega o payload bruto de ações: pode ser uma string JSON,
	// um array já decodificado ou nulo. Só o extrator de ações lê este campo.
	Actions any `json:"actions"`
}
