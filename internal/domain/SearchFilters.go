package domain

import (
	"time"
)

type SortKey string

const (
	SortKeySpend       SortKey = "spend"
	SortKeyImpressions SortKey = "impressions"
	SortKeyClicks      SortKey = "clicks"
	SortKeyCTR         SortKey = "ctr"
	SortKeyCPC         SortKey = "cpc"
	SortKeyConversions SortKey = "conversions"
	SortKeyDate        SortKey = "date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchFilters descreve uma consulta de criativos. Tratado como valor
// imutável: cada mudança lógica de filtro gera exatamente uma regeneração
// da busca.
type SearchFilters struct {
	// Platform recorta a consulta ao store por plataforma de anúncios.
	// Vazio ou "all" significa sem recorte.
	Platform       string         `json:"platform"`
	CampaignIDs    []string       `json:"campaign_ids,omitempty"`
	AdsetIDs       []string       `json:"adset_ids,omitempty"`
	Level          ReportingLevel `json:"level"`
	CreativeType   CreativeType   `json:"creative_type,omitempty"`
	Query          string         `json:"query,omitempty"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	MinImpressions *int           `json:"min_impressions,omitempty"`
	MaxImpressions *int           `json:"max_impressions,omitempty"`
	MinSpend       *float64       `json:"min_spend,omitempty"`
	MaxSpend       *float64       `json:"max_spend,omitempty"`
	MinCTR         *float64       `json:"min_ctr,omitempty"`
	MaxCTR         *float64       `json:"max_ctr,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	SortBy         SortKey        `json:"sort_by,omitempty"`
	SortDirection  SortDirection  `json:"sort_direction,omitempty"`
	Limit          int            `json:"limit"`
	Offset         int            `json:"offset"`
}

// Clone devolve uma cópia independente dos filtros.
func (f *SearchFilters) Clone() *SearchFilters {
	if f == nil {
		return nil
	}

	clone := *f
	clone.CampaignIDs = append([]string(nil), f.CampaignIDs...)
	clone.AdsetIDs = append([]string(nil), f.AdsetIDs...)
	clone.Tags = append([]string(nil), f.Tags...)

	return &clone
}

// SearchResult é a janela de resultados exposta à camada de apresentação.
type SearchResult struct {
	Creatives []*EnrichedCreative `json:"creatives"`
	Total     int                 `json:"total"`
	HasMore   bool                `json:"has_more"`
}
