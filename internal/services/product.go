package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	msgProductNotFound    = "No product with the given ID was found."
	msgCollectionNotFound = "No collection with the given ID was found."
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	// GetProduct accepts a numeric id or a slug.
	GetProduct(ctx context.Context, identifier string) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	UpdateProduct(ctx context.Context, identifier string, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, identifier string) error

	CreateCollection(ctx context.Context, req *models.CreateCollectionRequest) (*models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type productService struct {
	store repository.Store
	cache cache.Cache
	ttl   time.Duration
}

func NewProductService(store repository.Store, cache cache.Cache, ttl time.Duration) ProductService {
	return &productService{store: store, cache: cache, ttl: ttl}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.UnitPrice.IsNegative() {
		return nil, appErrors.AddValidationError("unit_price", "must not be negative")
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	if slug == "" {
		return nil, appErrors.AddValidationError("slug", "could not be derived from the title")
	}

	product := &models.Product{
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice.Round(pricing.Places),
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	}

	if err := s.store.Products().CreateProduct(ctx, product); err != nil {
		return nil, productWriteError(err, "Failed to create product")
	}

	s.dropKeys(ctx, cache.CollectionListKey())

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, identifier string) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := productCacheKey(identifier)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return &cached, nil
	}

	product, err := resolveProduct(ctx, s.store.Products(), identifier)
	if err != nil {
		return nil, storeError(err, msgProductNotFound, "Failed to fetch product")
	}

	for _, k := range []string{cache.ProductIDKey(product.ID), cache.ProductSlugKey(product.Slug)} {
		if err := s.cache.Set(ctx, k, product, s.ttl); err != nil {
			logger.Warn("Product cache write failed", slog.String("key", k), slog.String("error", err.Error()))
		}
	}

	return product, nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.store.Products().ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) UpdateProduct(ctx context.Context, identifier string, req *models.UpdateProductRequest) (*models.Product, error) {

	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, appErrors.AddValidationError("unit_price", "must not be negative")
	}

	var product *models.Product

	var previousSlug string

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error

		product, err = resolveProduct(ctx, tx.Products(), identifier)
		if err != nil {
			return storeError(err, msgProductNotFound, "Failed to fetch product")
		}

		previousSlug = product.Slug

		if req.Title != nil {
			product.Title = *req.Title
		}
		if req.Slug != nil {
			product.Slug = *req.Slug
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.UnitPrice != nil {
			product.UnitPrice = req.UnitPrice.Round(pricing.Places)
		}
		if req.CollectionID != nil {
			product.CollectionID = *req.CollectionID
		}

		if err := tx.Products().UpdateProduct(ctx, product); err != nil {
			return productWriteError(err, "Failed to update product")
		}

		return nil
	})
	if err != nil {
		return nil, storeError(err, msgProductNotFound, "Failed to update product")
	}

	s.dropKeys(ctx, cache.ProductSlugKey(previousSlug), cache.CollectionListKey())
	invalidateProduct(ctx, s.cache, product)

	return product, nil
}

// DeleteProduct removes the product together with the reactions on it and on
// its reviews. Products referenced by an order are protected.
func (s *productService) DeleteProduct(ctx context.Context, identifier string) error {

	var product *models.Product

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error

		product, err = resolveProduct(ctx, tx.Products(), identifier)
		if err != nil {
			return err
		}

		if err := tx.Reactions().DeleteProductReviewReactions(ctx, product.ID); err != nil {
			return err
		}

		if err := tx.Reactions().DeleteTargetReactions(ctx, models.Target{Kind: models.TargetProduct, ID: product.ID}); err != nil {
			return err
		}

		return tx.Products().DeleteProduct(ctx, product.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return appErrors.ConflictError("Product can not be deleted because it is associated with an order item.").WithError(err)
		}

		return storeError(err, msgProductNotFound, "Failed to delete product")
	}

	invalidateProduct(ctx, s.cache, product)
	s.dropKeys(ctx, cache.CollectionListKey())

	return nil
}

func (s *productService) CreateCollection(ctx context.Context, req *models.CreateCollectionRequest) (*models.Collection, error) {

	collection := &models.Collection{Title: req.Title}

	if err := s.store.Collections().CreateCollection(ctx, collection); err != nil {
		return nil, appErrors.DatabaseError("Failed to create collection").WithError(err)
	}

	s.dropKeys(ctx, cache.CollectionListKey())

	return collection, nil
}

func (s *productService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {

	collection, err := s.store.Collections().GetCollection(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCollectionNotFound, "Failed to fetch collection")
	}

	return collection, nil
}

func (s *productService) ListCollections(ctx context.Context) ([]*models.Collection, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.CollectionListKey()

	var cached []*models.Collection

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Collection cache read failed", slog.String("error", err.Error()))
	} else if found {
		return cached, nil
	}

	collections, err := s.store.Collections().ListCollections(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch collections").WithError(err)
	}

	if err := s.cache.Set(ctx, key, collections, s.ttl); err != nil {
		logger.Warn("Collection cache write failed", slog.String("error", err.Error()))
	}

	return collections, nil
}

func (s *productService) DeleteCollection(ctx context.Context, id int64) error {

	err := s.store.Collections().DeleteCollection(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return appErrors.ConflictError("Collection can not be deleted because it is associated with one or more products.").WithError(err)
		}

		return storeError(err, msgCollectionNotFound, "Failed to delete collection")
	}

	s.dropKeys(ctx, cache.CollectionListKey())

	return nil
}

func (s *productService) dropKeys(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed",
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}

// invalidateProduct drops both cache entries of product. Cache failures only
// leave stale reads until the TTL expires, so they are logged and ignored.
func invalidateProduct(ctx context.Context, c cache.Cache, product *models.Product) {
	if product == nil {
		return
	}

	keys := []string{cache.ProductIDKey(product.ID), cache.ProductSlugKey(product.Slug)}

	if err := c.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed",
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}

// resolveProduct looks the identifier up as an id first and falls back to the
// slug, so numeric slugs stay reachable.
func resolveProduct(ctx context.Context, products repository.ProductRepository, identifier string) (*models.Product, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil && id > 0 {
		product, err := products.GetProductByID(ctx, id)
		if err == nil || !errors.Is(err, repository.ErrNotFound) {
			return product, err
		}
	}

	return products.GetProductBySlug(ctx, identifier)
}

func productCacheKey(identifier string) string {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil && id > 0 {
		return cache.ProductIDKey(id)
	}

	return cache.ProductSlugKey(identifier)
}

func productWriteError(err error, failed string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.ConflictError("A product with this slug already exists.").WithError(err)
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.AddValidationError("collection_id", "Collection with given id does not exist.").WithError(err)
	case errors.Is(err, repository.ErrConstraint):
		return appErrors.ValidationError("Product values violate a constraint").WithError(err)
	}

	return storeError(err, msgProductNotFound, failed)
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Slugify lowercases title, strips accents and joins the remaining
// alphanumeric runs with single hyphens.
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			b.WriteRune(r)
			pendingHyphen = false

			continue
		}

		pendingHyphen = true
	}

	return b.String()
}
