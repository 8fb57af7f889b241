package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/creative-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

const (
	creativeInsightsTable = "creative_insights ci"
)

type InsightRepository interface {
	GetByScope(ctx context.Context, platform string, level domain.ReportingLevel, campaignIDs, adsetIDs []string, startDate, endDate *time.Time) ([]*domain.InsightRow, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) GetByScope(
	ctx context.Context,
	platform string,
	level domain.ReportingLevel,
	campaignIDs, adsetIDs []string,
	startDate, endDate *time.Time,
) ([]*domain.InsightRow, error) {
	builder := squirrel.
		Select("ci.entity_id, ci.campaign_id, ci.adset_id, ci.account_id, ci.level, ci.date, ci.impressions, ci.clicks, ci.spend, ci.reach, ci.ctr, ci.cpc, ci.cpm, ci.actions").
		From(creativeInsightsTable).
		Where(squirrel.Eq{"ci.level": string(level)}).
		PlaceholderFormat(squirrel.Dollar)

	// "all" e vazio significam sem recorte de plataforma
	if platform != "" && platform != "all" {
		builder = builder.Where(squirrel.Eq{"ci.platform": platform})
	}

	if len(campaignIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"ci.campaign_id": campaignIDs})
	}

	if len(adsetIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"ci.adset_id": adsetIDs})
	}

	if startDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"ci.date": startDate.Format("2006-01-02")})
	}

	if endDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"ci.date": endDate.Format("2006-01-02")})
	}

	query, args, err := builder.OrderBy("ci.date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	insights := make([]*domain.InsightRow, 0)
	for rows.Next() {
		insight, err := r.scanInsightRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear insight row: %w", err)
		}
		insights = append(insights, insight)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return insights, nil
}

func (r *insightRepository) scanInsightRow(rows *sql.Rows) (*domain.InsightRow, error) {
	insight := &domain.InsightRow{}
	var actionsJSON []byte
	var level string

	err := rows.Scan(
		&insight.EntityID,
		&insight.CampaignID,
		&insight.AdsetID,
		&insight.AccountID,
		&level,
		&insight.Date,
		&insight.Impressions,
		&insight.Clicks,
		&insight.Spend,
		&insight.Reach,
		&insight.CTR,
		&insight.CPC,
		&insight.CPM,
		&actionsJSON,
	)
	if err != nil {
		return nil, err
	}

	insight.Level = domain.ReportingLevel(level)

	// O payload de ações é guardado como JSONB e entregue bruto; só o
	// extrator de ações o interpreta.
	if actionsJSON != nil {
		insight.Actions = string(actionsJSON)
	}

	return insight, nil
}
