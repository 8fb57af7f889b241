package creative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	t.Run("Uma linha com ação de compra gera métricas e derivadas corretas", func(t *testing.T) {
		rows := []*domain.InsightRow{
			{
				EntityID:    "1",
				Level:       domain.ReportingLevelAd,
				Date:        day(1),
				Impressions: 1000,
				Clicks:      20,
				Spend:       50,
				Actions:     `[{"action_type":"purchase","value":"2"}]`,
			},
		}

		metrics, _, err := Aggregate(rows)
		require.NoError(t, err)
		require.Contains(t, metrics, "1")

		entry := metrics["1"]
		assert.Equal(t, 1000, entry.Impressions)
		assert.Equal(t, 20, entry.Clicks)
		assert.Equal(t, 50.0, entry.Spend)
		assert.Equal(t, 2.0, entry.Conversions)

		derived := entry.Derived()
		assert.Equal(t, 2.0, derived.CTR)
		assert.Equal(t, 2.5, derived.CPC)
	})

	t.Run("Somatório é independente da ordem das linhas", func(t *testing.T) {
		rows := []*domain.InsightRow{
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(1), Impressions: 100, Clicks: 5, Spend: 10},
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(2), Impressions: 200, Clicks: 7, Spend: 20},
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(3), Impressions: 300, Clicks: 9, Spend: 30},
		}
		reversed := []*domain.InsightRow{rows[2], rows[1], rows[0]}

		forward, _, err := Aggregate(rows)
		require.NoError(t, err)
		backward, _, err := Aggregate(reversed)
		require.NoError(t, err)

		assert.Equal(t, forward["1"].Impressions, backward["1"].Impressions)
		assert.Equal(t, forward["1"].Clicks, backward["1"].Clicks)
		assert.Equal(t, forward["1"].Spend, backward["1"].Spend)
		assert.Equal(t, forward["1"].Daily, backward["1"].Daily)
	})

	t.Run("Snapshots diários saem ordenados por data ascendente", func(t *testing.T) {
		rows := []*domain.InsightRow{
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(3), Impressions: 1},
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(1), Impressions: 2},
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(2), Impressions: 3},
		}

		metrics, _, err := Aggregate(rows)
		require.NoError(t, err)

		daily := metrics["1"].Daily
		require.Len(t, daily, 3)
		assert.Equal(t, day(1), daily[0].Date)
		assert.Equal(t, day(2), daily[1].Date)
		assert.Equal(t, day(3), daily[2].Date)
	})

	t.Run("Entidade sem linhas não aparece no mapa de saída", func(t *testing.T) {
		metrics, scopes, err := Aggregate(nil)
		require.NoError(t, err)
		assert.Empty(t, metrics)
		assert.Empty(t, scopes)
	})

	t.Run("Níveis de relatório misturados retornam erro", func(t *testing.T) {
		rows := []*domain.InsightRow{
			{EntityID: "1", Level: domain.ReportingLevelAd, Date: day(1)},
			{EntityID: "c1", Level: domain.ReportingLevelCampaign, Date: day(1)},
		}

		_, _, err := Aggregate(rows)
		assert.Error(t, err)
	})

	t.Run("Escopo da entidade vem da primeira linha", func(t *testing.T) {
		rows := []*domain.InsightRow{
			{EntityID: "1", CampaignID: "c1", AdsetID: "s1", AccountID: "a1", Level: domain.ReportingLevelAd, Date: day(1)},
		}

		_, scopes, err := Aggregate(rows)
		require.NoError(t, err)
		assert.Equal(t, EntityScope{CampaignID: "c1", AdsetID: "s1", AccountID: "a1"}, scopes["1"])
	})
}

func TestDerived_DivisaoPorZero(t *testing.T) {
	tests := []struct {
		name    string
		metrics domain.AggregatedMetrics
		check   func(t *testing.T, d domain.DerivedMetrics)
	}{
		{
			name:    "Zero impressões implica ctr e cpm zero",
			metrics: domain.AggregatedMetrics{Clicks: 10, Spend: 5},
			check: func(t *testing.T, d domain.DerivedMetrics) {
				assert.Equal(t, 0.0, d.CTR)
				assert.Equal(t, 0.0, d.CPM)
			},
		},
		{
			name:    "Zero cliques implica cpc zero",
			metrics: domain.AggregatedMetrics{Impressions: 100, Spend: 5},
			check: func(t *testing.T, d domain.DerivedMetrics) {
				assert.Equal(t, 0.0, d.CPC)
			},
		},
		{
			name:    "Zero gasto implica roas zero",
			metrics: domain.AggregatedMetrics{ConversionValue: 300},
			check: func(t *testing.T, d domain.DerivedMetrics) {
				assert.Equal(t, 0.0, d.ROAS)
			},
		},
		{
			name:    "Zero alcance implica frequência zero",
			metrics: domain.AggregatedMetrics{Impressions: 100},
			check: func(t *testing.T, d domain.DerivedMetrics) {
				assert.Equal(t, 0.0, d.Frequency)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.metrics.Derived())
		})
	}
}
