package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/catalog-api/internal/model"
	"github.com/Payphone-Digital/catalog-api/internal/sorting"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of products. Validated sort fields are pushed
// onto the query in request order before pagination.
func (r *ProductRepository) List(ctx context.Context, limit, offset int, search string, sorts []sorting.Field) ([]model.Product, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Listing products").
		Int("limit", limit).
		Int("offset", offset).
		String("search", search).
		Int("sort_count", len(sorts)).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, 0, err
	}

	start := time.Now()
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR sku ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count products").
			Err(err).
			Log()
		return nil, 0, err
	}

	orderer := sorting.NewGormOrderer(query)
	if err := sorting.Apply(orderer, sorts); err != nil {
		logger.ErrorWithContext(ctx, "Failed to apply sorting to query").
			Int("sort_count", len(sorts)).
			Err(err).
			Log()
		return nil, 0, err
	}
	query = orderer.DB()

	if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch products").
			Int("limit", limit).
			Int("offset", offset).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Products listed successfully").
		Int("limit", limit).
		Int("offset", offset).
		Int64("total", total).
		Int("returned_count", len(products)).
		Duration(time.Since(start)).
		Log()

	return products, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var product model.Product

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&product)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to get product by ID").
			Int("product_id", int(id)).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Product retrieved successfully").
		Int("product_id", int(id)).
		String("sku", product.SKU).
		Duration(time.Since(start)).
		Log()

	return &product, nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetBySKU")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var product model.Product
	result := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product)
	if result.Error != nil {
		return nil, result.Error
	}

	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create product").
			String("sku", product.SKU).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Product created successfully").
		String("sku", product.SKU).
		Int("product_id", int(product.ID)).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update product").
			Int("product_id", int(id)).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No product found to update").
			Int("product_id", int(id)).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Product updated successfully").
		Int("product_id", int(id)).
		Int64("rows_affected", result.RowsAffected).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete product").
			Int("product_id", int(id)).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No product found to delete").
			Int("product_id", int(id)).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Product deleted successfully").
		Int("product_id", int(id)).
		Duration(time.Since(start)).
		Log()

	return nil
}
