package creative

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

// ErrMixedReportingLevels indica linhas de insight de níveis de relatório
// diferentes na mesma agregação, o que é erro do chamador.
var ErrMixedReportingLevels = errors.New("linhas de insight com níveis de relatório misturados")

// EntityScope guarda a hierarquia (campanha/conjunto/conta) de uma entidade,
// extraída das próprias linhas de insight, para o join posterior.
type EntityScope struct {
	CampaignID string
	AdsetID    string
	AccountID  string
}

// Aggregate agrupa as linhas de insight por entidade e acumula os contadores
// brutos mais os totais de ações. As linhas já devem vir filtradas por
// período e escopo, todas no mesmo nível de relatório: níveis misturados são
// erro do chamador e nunca são somados silenciosamente.
//
// Entidades sem nenhuma linha não aparecem no mapa de saída.
func Aggregate(rows []*domain.InsightRow) (map[string]*domain.AggregatedMetrics, map[string]EntityScope, error) {
	if err := ensureSingleLevel(rows); err != nil {
		return nil, nil, err
	}

	metrics := make(map[string]*domain.AggregatedMetrics)
	scopes := make(map[string]EntityScope)

	for _, row := range rows {
		entry, ok := metrics[row.EntityID]
		if !ok {
			entry = &domain.AggregatedMetrics{EntityID: row.EntityID}
			metrics[row.EntityID] = entry
			scopes[row.EntityID] = EntityScope{
				CampaignID: row.CampaignID,
				AdsetID:    row.AdsetID,
				AccountID:  row.AccountID,
			}
		}

		entry.Impressions += row.Impressions
		entry.Clicks += row.Clicks
		entry.Spend += row.Spend
		entry.Reach += row.Reach

		totals := ExtractActionTotals(row.Actions)
		entry.Conversions += totals.Conversions
		entry.ConversionValue += totals.ConversionValue
		entry.Leads += totals.Leads
		entry.MessagingStarts += totals.MessagingStarts

		entry.Daily = append(entry.Daily, domain.DailySnapshot{
			Date:        row.Date,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Spend:       row.Spend,
			CTR:         row.CTR,
			CPC:         row.CPC,
			Conversions: totals.Conversions,
		})
	}

	// Ordenação estável: empates de data preservam a ordem original das linhas
	for _, entry := range metrics {
		daily := entry.Daily
		sort.SliceStable(daily, func(i, j int) bool {
			return daily[i].Date.Before(daily[j].Date)
		})
	}

	return metrics, scopes, nil
}

func ensureSingleLevel(rows []*domain.InsightRow) error {
	if len(rows) == 0 {
		return nil
	}

	level := rows[0].Level
	for _, row := range rows {
		if row.Level != level {
			return errors.Wrapf(ErrMixedReportingLevels, "%q e %q", level, row.Level)
		}
	}

	return nil
}
