package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type CollectionRepository interface {
	CreateCollection(ctx context.Context, collection *models.Collection) error
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type collectionRepository struct {
	DB DBTX
}

func NewCollectionRepo(db DBTX) CollectionRepository {
	return &collectionRepository{DB: db}
}

func (r *collectionRepository) CreateCollection(ctx context.Context, collection *models.Collection) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := r.DB.QueryRowContext(dbCtx, `INSERT INTO collections (title) VALUES ($1) RETURNING id`, collection.Title).Scan(&collection.ID)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", translateError(err))
	}

	return nil
}

func (r *collectionRepository) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.title, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.title
	`

	collection := &models.Collection{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&collection.ID, &collection.Title, &collection.ProductsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection %d: %w", id, translateError(err))
	}

	return collection, nil
}

func (r *collectionRepository) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.title, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		GROUP BY c.id, c.title
		ORDER BY c.title
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	defer rows.Close()

	collections := []*models.Collection{}

	for rows.Next() {
		collection := &models.Collection{}

		if err := rows.Scan(&collection.ID, &collection.Title, &collection.ProductsCount); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}

		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collections, nil
}

// DeleteCollection fails with ErrReferenced while products still belong to it.
func (r *collectionRepository) DeleteCollection(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection %d: %w", id, translateError(err))
	}

	return expectAffected(result, "collection", id)
}
