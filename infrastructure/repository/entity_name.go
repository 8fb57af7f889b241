package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/creative-insights-api/infrastructure/database/postgres"
)

const (
	entityNamesTable = "entity_names en"
)

type EntityNameRepository interface {
	GetNames(ctx context.Context, entityIDs []string) (map[string]string, error)
}

type entityNameRepository struct {
	conn *postgres.Connection
}

func NewEntityNameRepository(conn *postgres.Connection) EntityNameRepository {
	return &entityNameRepository{
		conn: conn,
	}
}

func (r *entityNameRepository) GetNames(ctx context.Context, entityIDs []string) (map[string]string, error) {
	if len(entityIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := squirrel.
		Select("en.entity_id, en.name").
		From(entityNamesTable).
		Where(squirrel.Eq{"en.entity_id": entityIDs}).
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

	names := make(map[string]string)
	for rows.Next() {
		var entityID, name string
		if err := rows.Scan(&entityID, &name); err != nil {
			return nil, fmt.Errorf("erro ao escanear entity name: %w", err)
		}
		names[entityID] = name
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return names, nil
}
