package creative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

func TestJoinCreatives(t *testing.T) {
	metrics := map[string]*domain.AggregatedMetrics{
		"1": {EntityID: "1", Impressions: 1000, Clicks: 20, Spend: 50},
		"2": {EntityID: "2", Impressions: 500, Clicks: 10, Spend: 25},
	}
	scopes := map[string]EntityScope{
		"1": {CampaignID: "c1", AdsetID: "s1", AccountID: "a1"},
		"2": {CampaignID: "c1", AdsetID: "s2", AccountID: "a1"},
	}

	t.Run("Toda entidade agregada aparece exatamente uma vez", func(t *testing.T) {
		enriched := JoinCreatives(JoinInputs{Metrics: metrics, Scopes: scopes})

		require.Len(t, enriched, 2)
		seen := map[string]int{}
		for _, record := range enriched {
			seen[record.AdID()]++
		}
		assert.Equal(t, 1, seen["1"])
		assert.Equal(t, 1, seen["2"])
	})

	t.Run("Entidade sem mídia recebe placeholder unknown", func(t *testing.T) {
		enriched := JoinCreatives(JoinInputs{
			Metrics: metrics,
			Scopes:  scopes,
			Creatives: map[string]*domain.CreativeMedia{
				"1": {AdID: "1", Type: domain.CreativeTypeImage, ImageURL: "cached.png", FetchStatus: domain.FetchStatusCached},
			},
		})

		byID := indexByAdID(enriched)
		assert.Equal(t, domain.CreativeTypeImage, byID["1"].Creative.Type)
		assert.Equal(t, domain.CreativeTypeUnknown, byID["2"].Creative.Type)
		assert.Equal(t, domain.FetchStatusPending, byID["2"].Creative.FetchStatus)
	})

	t.Run("Lookups ausentes degradam com fallback", func(t *testing.T) {
		enriched := JoinCreatives(JoinInputs{Metrics: metrics, Scopes: scopes})

		byID := indexByAdID(enriched)
		assert.Equal(t, "1", byID["1"].DisplayName)
		assert.Equal(t, "c1", byID["1"].CampaignName)
		assert.Equal(t, "unknown", byID["1"].Status)
		assert.Nil(t, byID["1"].AIScore)
		assert.Equal(t, []string{}, byID["1"].Tags)
	})

	t.Run("Lookups presentes são aplicados", func(t *testing.T) {
		enriched := JoinCreatives(JoinInputs{
			Metrics:  metrics,
			Scopes:   scopes,
			Names:    map[string]string{"1": "Anúncio Verão", "c1": "Campanha Verão", "s1": "Conjunto A"},
			Statuses: map[string]string{"1": "ACTIVE"},
			AIScores: map[string]float64{"1": 8.5},
			Tags:     map[string][]string{"1": {"promo", "verao"}},
		})

		byID := indexByAdID(enriched)
		assert.Equal(t, "Anúncio Verão", byID["1"].DisplayName)
		assert.Equal(t, "Campanha Verão", byID["1"].CampaignName)
		assert.Equal(t, "Conjunto A", byID["1"].AdsetName)
		assert.Equal(t, "ACTIVE", byID["1"].Status)
		require.NotNil(t, byID["1"].AIScore)
		assert.Equal(t, 8.5, *byID["1"].AIScore)
		assert.Equal(t, []string{"promo", "verao"}, byID["1"].Tags)
	})

	t.Run("Métricas derivadas são calculadas no join", func(t *testing.T) {
		enriched := JoinCreatives(JoinInputs{Metrics: metrics, Scopes: scopes})

		byID := indexByAdID(enriched)
		assert.Equal(t, 2.0, byID["1"].Metrics.CTR)
		assert.Equal(t, 2.5, byID["1"].Metrics.CPC)
	})
}

func indexByAdID(records []*domain.EnrichedCreative) map[string]*domain.EnrichedCreative {
	byID := make(map[string]*domain.EnrichedCreative, len(records))
	for _, record := range records {
		byID[record.AdID()] = record
	}
	return byID
}
