package creative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

func creativeWith(adID string, spend float64, impressions int, ctr float64) *domain.EnrichedCreative {
	return &domain.EnrichedCreative{
		Creative: &domain.CreativeMedia{AdID: adID, Type: domain.CreativeTypeImage},
		Metrics: domain.DerivedMetrics{
			Spend:       spend,
			Impressions: impressions,
			CTR:         ctr,
		},
		Tags: []string{},
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestFilterSortPage_Filtros(t *testing.T) {
	t.Run("Limites de gasto são inclusivos nas duas pontas", func(t *testing.T) {
		input := []*domain.EnrichedCreative{
			creativeWith("abaixo", 9.99, 0, 0),
			creativeWith("minimo", 10, 0, 0),
			creativeWith("meio", 30, 0, 0),
			creativeWith("maximo", 50, 0, 0),
			creativeWith("acima", 50.01, 0, 0),
		}

		result := FilterSortPage(input, &domain.SearchFilters{
			MinSpend: floatPtr(10),
			MaxSpend: floatPtr(50),
		})

		require.Equal(t, 3, result.Total)
		for _, record := range result.Creatives {
			assert.GreaterOrEqual(t, record.Metrics.Spend, 10.0)
			assert.LessOrEqual(t, record.Metrics.Spend, 50.0)
		}
	})

	t.Run("Filtro de ctr mínimo exclui quem fica abaixo", func(t *testing.T) {
		input := []*domain.EnrichedCreative{creativeWith("1", 50, 1000, 2.0)}

		result := FilterSortPage(input, &domain.SearchFilters{MinCTR: floatPtr(3)})

		assert.Equal(t, 0, result.Total)
		assert.Empty(t, result.Creatives)
		assert.False(t, result.HasMore)
	})

	t.Run("Predicados são conjuntivos", func(t *testing.T) {
		input := []*domain.EnrichedCreative{
			creativeWith("passa-tudo", 20, 500, 5),
			creativeWith("falha-impressoes", 20, 100, 5),
		}

		result := FilterSortPage(input, &domain.SearchFilters{
			MinSpend:       floatPtr(10),
			MinImpressions: intPtr(300),
		})

		require.Equal(t, 1, result.Total)
		assert.Equal(t, "passa-tudo", result.Creatives[0].AdID())
	})

	t.Run("Texto livre busca sem diferenciar maiúsculas em título corpo e descrição", func(t *testing.T) {
		promo := creativeWith("promo", 1, 0, 0)
		promo.Creative.Title = "Grande PROMOÇÃO de inverno"
		outro := creativeWith("outro", 1, 0, 0)
		outro.Creative.Body = "sem oferta"

		result := FilterSortPage([]*domain.EnrichedCreative{promo, outro}, &domain.SearchFilters{
			Query: "promoção",
		})

		require.Equal(t, 1, result.Total)
		assert.Equal(t, "promo", result.Creatives[0].AdID())
	})

	t.Run("Filtro de tag exige ao menos uma em comum", func(t *testing.T) {
		comTag := creativeWith("com-tag", 1, 0, 0)
		comTag.Tags = []string{"promo"}
		semTag := creativeWith("sem-tag", 1, 0, 0)

		result := FilterSortPage([]*domain.EnrichedCreative{comTag, semTag}, &domain.SearchFilters{
			Tags: []string{"promo", "inverno"},
		})

		require.Equal(t, 1, result.Total)
		assert.Equal(t, "com-tag", result.Creatives[0].AdID())
	})

	t.Run("Tipo de criativo all não filtra nada", func(t *testing.T) {
		input := []*domain.EnrichedCreative{creativeWith("1", 1, 0, 0)}

		result := FilterSortPage(input, &domain.SearchFilters{CreativeType: "all"})

		assert.Equal(t, 1, result.Total)
	})
}

func TestFilterSortPage_Ordenacao(t *testing.T) {
	t.Run("Padrão é gasto decrescente", func(t *testing.T) {
		input := []*domain.EnrichedCreative{
			creativeWith("barato", 5, 0, 0),
			creativeWith("caro", 100, 0, 0),
			creativeWith("medio", 40, 0, 0),
		}

		result := FilterSortPage(input, &domain.SearchFilters{})

		require.Len(t, result.Creatives, 3)
		assert.Equal(t, "caro", result.Creatives[0].AdID())
		assert.Equal(t, "medio", result.Creatives[1].AdID())
		assert.Equal(t, "barato", result.Creatives[2].AdID())
	})

	t.Run("Chave desconhecida cai no padrão", func(t *testing.T) {
		input := []*domain.EnrichedCreative{
			creativeWith("barato", 5, 0, 0),
			creativeWith("caro", 100, 0, 0),
		}

		result := FilterSortPage(input, &domain.SearchFilters{SortBy: "inexistente", SortDirection: "asc"})

		assert.Equal(t, "caro", result.Creatives[0].AdID())
	})

	t.Run("Ordenação por data usa o snapshot mais recente", func(t *testing.T) {
		antigo := creativeWith("antigo", 1, 0, 0)
		antigo.DailyMetrics = []domain.DailySnapshot{{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}}
		recente := creativeWith("recente", 1, 0, 0)
		recente.DailyMetrics = []domain.DailySnapshot{{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}

		result := FilterSortPage([]*domain.EnrichedCreative{antigo, recente}, &domain.SearchFilters{
			SortBy:        domain.SortKeyDate,
			SortDirection: domain.SortDesc,
		})

		assert.Equal(t, "recente", result.Creatives[0].AdID())
	})

	t.Run("Ordenação ascendente explícita é respeitada", func(t *testing.T) {
		input := []*domain.EnrichedCreative{
			creativeWith("b", 0, 200, 0),
			creativeWith("a", 0, 100, 0),
		}

		result := FilterSortPage(input, &domain.SearchFilters{
			SortBy:        domain.SortKeyImpressions,
			SortDirection: domain.SortAsc,
		})

		assert.Equal(t, "a", result.Creatives[0].AdID())
	})
}

func TestFilterSortPage_Paginacao(t *testing.T) {
	input := []*domain.EnrichedCreative{
		creativeWith("1", 50, 0, 0),
		creativeWith("2", 40, 0, 0),
		creativeWith("3", 30, 0, 0),
		creativeWith("4", 20, 0, 0),
		creativeWith("5", 10, 0, 0),
	}

	tests := []struct {
		name        string
		offset      int
		limit       int
		expectedLen int
		expectedHas bool
	}{
		{name: "Primeira página", offset: 0, limit: 2, expectedLen: 2, expectedHas: true},
		{name: "Página do meio", offset: 2, limit: 2, expectedLen: 2, expectedHas: true},
		{name: "Última página parcial", offset: 4, limit: 2, expectedLen: 1, expectedHas: false},
		{name: "Janela exata até o fim", offset: 3, limit: 2, expectedLen: 2, expectedHas: false},
		{name: "Offset fora do alcance devolve página vazia", offset: 10, limit: 2, expectedLen: 0, expectedHas: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterSortPage(input, &domain.SearchFilters{Offset: tt.offset, Limit: tt.limit})

			// Total conta após o filtro e antes da janela
			assert.Equal(t, 5, result.Total)
			assert.Len(t, result.Creatives, tt.expectedLen)
			assert.Equal(t, tt.expectedHas, result.HasMore)
		})
	}
}
