package creative

import (
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

const statusUnknown = "unknown"

// JoinInputs reúne os lookups necessários para montar os registros
// enriquecidos. Todos os mapas são chaveados por id e podem estar incompletos.
type JoinInputs struct {
	Metrics   map[string]*domain.AggregatedMetrics
	Scopes    map[string]EntityScope
	Creatives map[string]*domain.CreativeMedia
	Names     map[string]string
	Statuses  map[string]string
	AIScores  map[string]float64
	Tags      map[string][]string
}

// JoinCreatives monta exatamente um EnrichedCreative por entidade presente em
// Metrics. Entidades sem registro de mídia recebem o placeholder. Lookups
// ausentes degradam: nome cai para o id bruto, status para "unknown", score é
// omitido e tags viram lista vazia. A ordem de saída não é significativa.
func JoinCreatives(in JoinInputs) []*domain.EnrichedCreative {
	enriched := make([]*domain.EnrichedCreative, 0, len(in.Metrics))

	for entityID, metrics := range in.Metrics {
		scope := in.Scopes[entityID]

		media, ok := in.Creatives[entityID]
		if !ok || media == nil {
			media = domain.NewPlaceholderCreative(entityID)
		}

		record := &domain.EnrichedCreative{
			Creative:     media,
			DisplayName:  nameOrID(in.Names, entityID),
			CampaignName: nameOrID(in.Names, scope.CampaignID),
			AdsetName:    nameOrID(in.Names, scope.AdsetID),
			CampaignID:   scope.CampaignID,
			AdsetID:      scope.AdsetID,
			AccountID:    scope.AccountID,
			Status:       statusUnknown,
			Metrics:      metrics.Derived(),
			DailyMetrics: metrics.Daily,
			Tags:         []string{},
		}

		if status, ok := in.Statuses[entityID]; ok && status != "" {
			record.Status = status
		}

		if score, ok := in.AIScores[entityID]; ok {
			scoreCopy := score
			record.AIScore = &scoreCopy
		}

		if tags, ok := in.Tags[entityID]; ok && len(tags) > 0 {
			record.Tags = tags
		}

		enriched = append(enriched, record)
	}

	return enriched
}

func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
