package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/creative-insights-api/infrastructure/database/postgres"
)

const (
	adStatusesTable = "ad_statuses ast"
	adAIScoresTable = "ad_ai_scores ais"
	adTagsTable     = "ad_tags at"
)

// AdMetadataRepository agrupa as consultas auxiliares chaveadas por ad id:
// status de veiculação, score de IA e tags.
type AdMetadataRepository interface {
	GetStatuses(ctx context.Context, adIDs []string) (map[string]string, error)
	GetAIScores(ctx context.Context, adIDs []string) (map[string]float64, error)
	GetTags(ctx context.Context, adIDs []string) (map[string][]string, error)
}

type adMetadataRepository struct {
	conn *postgres.Connection
}

func NewAdMetadataRepository(conn *postgres.Connection) AdMetadataRepository {
	return &adMetadataRepository{
		conn: conn,
	}
}

func (r *adMetadataRepository) GetStatuses(ctx context.Context, adIDs []string) (map[string]string, error) {
	if len(adIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := squirrel.
		Select("ast.ad_id, ast.status").
		From(adStatusesTable).
		Where(squirrel.Eq{"ast.ad_id": adIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]string)
	for rows.Next() {
		var adID, status string
		if err := rows.Scan(&adID, &status); err != nil {
			return nil, fmt.Errorf("erro ao escanear status: %w", err)
		}
		statuses[adID] = status
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return statuses, nil
}

func (r *adMetadataRepository) GetAIScores(ctx context.Context, adIDs []string) (map[string]float64, error) {
	if len(adIDs) == 0 {
		return map[string]float64{}, nil
	}

	query, args, err := squirrel.
		Select("ais.ad_id, ais.score").
		From(adAIScoresTable).
		Where(squirrel.Eq{"ais.ad_id": adIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]float64)
	for rows.Next() {
		var adID string
		var score float64
		if err := rows.Scan(&adID, &score); err != nil {
			return nil, fmt.Errorf("erro ao escanear score: %w", err)
		}
		scores[adID] = score
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return scores, nil
}

func (r *adMetadataRepository) GetTags(ctx context.Context, adIDs []string) (map[string][]string, error) {
	if len(adIDs) == 0 {
		return map[string][]string{}, nil
	}

	query, args, err := squirrel.
		Select("at.ad_id, at.tag").
		From(adTagsTable).
		Where(squirrel.Eq{"at.ad_id": adIDs}).
		OrderBy("at.ad_id, at.tag").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var adID, tag string
		if err := rows.Scan(&adID, &tag); err != nil {
			return nil, fmt.Errorf("erro ao escanear tag: %w", err)
		}
		tags[adID] = append(tags[adID], tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return tags, nil
}
