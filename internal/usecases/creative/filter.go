package creative

import (
	"sort"
	"strings"

	"github.com/vfg2006/creative-insights-api/internal/domain"
)

// FilterSortPage aplica os filtros conjuntivos, a ordenação configurada e a
// janela offset/limit, nessa ordem. Total é contado após o filtro e antes da
// janela. Offset fora do alcance devolve página vazia com hasMore=false.
func FilterSortPage(creatives []*domain.EnrichedCreative, filters *domain.SearchFilters) *domain.SearchResult {
	filtered := applyFilters(creatives, filters)
	sortCreatives(filtered, filters)

	total := len(filtered)
	offset := filters.Offset
	limit := filters.Limit

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = total
	}

	page := make([]*domain.EnrichedCreative, 0, limit)
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = append(page, filtered[offset:end]...)
	}

	return &domain.SearchResult{
		Creatives: page,
		Total:     total,
		HasMore:   offset+limit < total,
	}
}

// applyFilters mantém apenas os registros que passam em todos os predicados.
// Limites numéricos são inclusivos nas duas pontas.
func applyFilters(creatives []*domain.EnrichedCreative, filters *domain.SearchFilters) []*domain.EnrichedCreative {
	result := make([]*domain.EnrichedCreative, 0, len(creatives))

	query := strings.ToLower(strings.TrimSpace(filters.Query))

	for _, record := range creatives {
		if !matchesCreativeType(record, filters.CreativeType) {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}
		if !withinIntRange(record.Metrics.Impressions, filters.MinImpressions, filters.MaxImpressions) {
			continue
		}
		if !withinFloatRange(record.Metrics.Spend, filters.MinSpend, filters.MaxSpend) {
			continue
		}
		if !withinFloatRange(record.Metrics.CTR, filters.MinCTR, filters.MaxCTR) {
			continue
		}
		if len(filters.Tags) > 0 && !hasAnyTag(record, filters.Tags) {
			continue
		}

		result = append(result, record)
	}

	return result
}

func matchesCreativeType(record *domain.EnrichedCreative, creativeType domain.CreativeType) bool {
	if creativeType == "" || creativeType == "all" {
		return true
	}
	return record.Creative != nil && record.Creative.Type == creativeType
}

// matchesQuery procura o texto livre, sem diferenciar maiúsculas, no título,
// corpo e descrição do criativo.
func matchesQuery(record *domain.EnrichedCreative, query string) bool {
	if record.Creative == nil {
		return false
	}

	return strings.Contains(strings.ToLower(record.Creative.Title), query) ||
		strings.Contains(strings.ToLower(record.Creative.Body), query) ||
		strings.Contains(strings.ToLower(record.Creative.Description), query)
}

func withinIntRange(value int, min, max *int) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func withinFloatRange(value float64, min, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func hasAnyTag(record *domain.EnrichedCreative, wanted []string) bool {
	for _, tag := range record.Tags {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}

// sortCreatives ordena pelo critério configurado. Chave ausente ou
// desconhecida cai no padrão spend decrescente. A ordenação é estável: a
// chave primária é a única com significado.
func sortCreatives(creatives []*domain.EnrichedCreative, filters *domain.SearchFilters) {
	key := filters.SortBy
	direction := filters.SortDirection

	switch key {
	case domain.SortKeySpend, domain.SortKeyImpressions, domain.SortKeyClicks,
		domain.SortKeyCTR, domain.SortKeyCPC, domain.SortKeyConversions, domain.SortKeyDate:
	default:
		key = domain.SortKeySpend
		direction = domain.SortDesc
	}

	if direction != domain.SortAsc && direction != domain.SortDesc {
		direction = domain.SortDesc
	}

	sort.SliceStable(creatives, func(i, j int) bool {
		less := sortLess(creatives[i], creatives[j], key)
		if direction == domain.SortDesc {
			return sortLess(creatives[j], creatives[i], key)
		}
		return less
	})
}

func sortLess(a, b *domain.EnrichedCreative, key domain.SortKey) bool {
	switch key {
	case domain.SortKeyImpressions:
		return a.Metrics.Impressions < b.Metrics.Impressions
	case domain.SortKeyClicks:
		return a.Metrics.Clicks < b.Metrics.Clicks
	case domain.SortKeyCTR:
		return a.Metrics.CTR < b.Metrics.CTR
	case domain.SortKeyCPC:
		return a.Metrics.CPC < b.Metrics.CPC
	case domain.SortKeyConversions:
		return a.Metrics.Conversions < b.Metrics.Conversions
	case domain.SortKeyDate:
		return a.LastActivity().Before(b.LastActivity())
	default:
		return a.Metrics.Spend < b.Metrics.Spend
	}
}
