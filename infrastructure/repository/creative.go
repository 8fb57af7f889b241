package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/creative-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

const (
	adCreativesTable = "ad_creatives ac"
)

// StaleMediaRef aponta um anúncio cuja mídia cacheada precisa de refresh,
// com a conta necessária para a chamada à Graph API.
type StaleMediaRef struct {
	AdID      string
	AccountID string
}

type CreativeRepository interface {
	GetByAdIDs(ctx context.Context, adIDs []string) ([]*domain.CreativeMedia, error)
	ListStaleMedia(ctx context.Context, limit int) ([]StaleMediaRef, error)
	SaveOrUpdateBatch(ctx context.Context, creatives []*domain.CreativeMedia) error
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) GetByAdIDs(ctx context.Context, adIDs []string) ([]*domain.CreativeMedia, error) {
	if len(adIDs) == 0 {
		return nil, nil
	}

	query, args, err := squirrel.
		Select("ac.ad_id, ac.creative_type, ac.image_url, ac.live_image_url, ac.thumbnail_url, ac.video_url, ac.live_video_url, ac.title, ac.body, ac.description, ac.call_to_action, ac.is_complete, ac.fetch_status").
		From(adCreativesTable).
		Where(squirrel.Eq{"ac.ad_id": adIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	creatives := make([]*domain.CreativeMedia, 0)
	for rows.Next() {
		creative, err := r.scanCreative(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear creative: %w", err)
		}
		creatives = append(creatives, creative)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return creatives, nil
}

// ListStaleMedia retorna os anúncios cuja mídia cacheada está pendente ou
// incompleta, para o refresh periódico.
func (r *creativeRepository) ListStaleMedia(ctx context.Context, limit int) ([]StaleMediaRef, error) {
	query, args, err := squirrel.
		Select("ac.ad_id, ac.account_id").
		From(adCreativesTable).
		Where(squirrel.Or{
			squirrel.Eq{"ac.fetch_status": string(domain.FetchStatusPending)},
			squirrel.Eq{"ac.is_complete": false},
		}).
		OrderBy("ac.updated_at ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

	refs := make([]StaleMediaRef, 0)
	for rows.Next() {
		var ref StaleMediaRef
		if err := rows.Scan(&ref.AdID, &ref.AccountID); err != nil {
			return nil, fmt.Errorf("erro ao escanear referência de mídia: %w", err)
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return refs, nil
}

// SaveOrUpdateBatch insere ou atualiza os registros de mídia cacheada em uma
// única transação: ou o lote da conta inteiro persiste, ou nada persiste.
func (r *creativeRepository) SaveOrUpdateBatch(ctx context.Context, creatives []*domain.CreativeMedia) error {
	if len(creatives) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, creative := range creatives {
			query, args, err := upsertCreativeQuery(creative)
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao executar a query: %w", err)
			}
		}

		return nil
	})
}

func upsertCreativeQuery(creative *domain.CreativeMedia) (string, []interface{}, error) {
	return squirrel.
		Insert("ad_creatives").
		Columns(
			"ad_id", "creative_type", "image_url", "live_image_url", "thumbnail_url",
			"video_url", "live_video_url", "title", "body", "description",
			"call_to_action", "is_complete", "fetch_status", "updated_at",
		).
		Values(
			creative.AdID,
			string(creative.Type),
			creative.ImageURL,
			creative.LiveImageURL,
			creative.ThumbnailURL,
			creative.VideoURL,
			creative.LiveVideoURL,
			creative.Title,
			creative.Body,
			creative.Description,
			creative.CallToAction,
			creative.IsComplete,
			string(creative.FetchStatus),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (ad_id) DO UPDATE SET
			creative_type = EXCLUDED.creative_type,
			image_url = EXCLUDED.image_url,
			live_image_url = EXCLUDED.live_image_url,
			thumbnail_url = EXCLUDED.thumbnail_url,
			video_url = EXCLUDED.video_url,
			live_video_url = EXCLUDED.live_video_url,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			description = EXCLUDED.description,
			call_to_action = EXCLUDED.call_to_action,
			is_complete = EXCLUDED.is_complete,
			fetch_status = EXCLUDED.fetch_status,
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *creativeRepository) scanCreative(rows *sql.Rows) (*domain.CreativeMedia, error) {
	creative := &domain.CreativeMedia{}
	var creativeType, fetchStatus string

	err := rows.Scan(
		&creative.AdID,
		&creativeType,
		&creative.ImageURL,
		&creative.LiveImageURL,
		&creative.ThumbnailURL,
		&creative.VideoURL,
		&creative.LiveVideoURL,
		&creative.Title,
		&creative.Body,
		&creative.Description,
		&creative.CallToAction,
		&creative.IsComplete,
		&fetchStatus,
	)
	if err != nil {
		return nil, err
	}

	creative.Type = domain.CreativeType(creativeType)
	creative.FetchStatus = domain.FetchStatus(fetchStatus)

	return creative, nil
}
