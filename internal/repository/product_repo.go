package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"medchat/internal/domain"
)

// ProductRepository consulta el catálogo de productos (padres e hijos).
type ProductRepository interface {
	FindParentIDs(ctx context.Context, query domain.ProductQuery) ([]string, error)
	ListChildren(ctx context.Context, parentIDs []string) ([]domain.Product, error)
}

type PgProductRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

var productColumns = map[string]string{
	domain.FieldCategory:        "category",
	domain.FieldMedicalFeatures: "medical_features",
	domain.FieldTags:            "tags",
	domain.FieldNutritionalInfo: "nutritional_info",
}

// BuildProductFilter traduce la consulta a un WHERE parametrizado.
// Cada patrón se evalúa como regex sin distinguir mayúsculas (~*).
func BuildProductFilter(query domain.ProductQuery) (string, []any, error) {
	var args []any
	placeholder := func(v string) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var groups []string
	if len(query.Categories) > 0 {
		parts := make([]string, 0, len(query.Categories))
		for _, c := range query.Categories {
			parts = append(parts, "category ~* "+placeholder(c))
		}
		groups = append(groups, orGroup(parts))
	}
	if len(query.Conditions) > 0 {
		parts := make([]string, 0, len(query.Conditions))
		for _, m := range query.Conditions {
			col, ok := productColumns[m.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown product field %q", m.Field)
			}
			parts = append(parts, col+" ~* "+placeholder(m.Pattern))
		}
		groups = append(groups, orGroup(parts))
	}

	if len(groups) == 0 {
		return "", nil, nil
	}
	return strings.Join(groups, " AND "), args, nil
}

func orGroup(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (r *PgProductRepository) FindParentIDs(ctx context.Context, query domain.ProductQuery) ([]string, error) {
	where, args, err := BuildProductFilter(query)
	if err != nil {
		return nil, err
	}
	if where == "" {
		return []string{}, nil
	}

	sql := `
		SELECT parent_id
		FROM product_parents
		WHERE ` + where + `
		ORDER BY parent_id
	`
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgProductRepository) ListChildren(ctx context.Context, parentIDs []string) ([]domain.Product, error) {
	if len(parentIDs) == 0 {
		return []domain.Product{}, nil
	}

	const query = `
		SELECT data
		FROM product_children
		WHERE parent_id = ANY($1)
		ORDER BY array_position($1, parent_id), id
	`
	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
