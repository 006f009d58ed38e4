package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
	"github.com/Payphone-Digital/catalog-api/internal/model"
	"github.com/Payphone-Digital/catalog-api/internal/repository"
	"github.com/Payphone-Digital/catalog-api/internal/sorting"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductSortPolicy declares the sorts the product listing endpoint
// permits. The policy also drives sort-index creation at startup.
var ProductSortPolicy = sorting.Policy{
	sorting.NewSpec("price", "price"),
	sorting.NewSpec("name", "name"),
	sorting.NewSpec("stock", "stock"),
	sorting.NewSpec("created_at", "created_at"),
}

type ProductService struct {
	repo  *repository.ProductRepository
	cache *CacheService
}

func NewProductService(repo *repository.ProductRepository, cache *CacheService) *ProductService {
	return &ProductService{repo: repo, cache: cache}
}

// SortPolicy returns the sort policy for the product listing endpoint.
func (s *ProductService) SortPolicy() sorting.Policy {
	return ProductSortPolicy
}

type cachedProductList struct {
	Products []dto.ProductResponse `json:"products"`
	Total    int64                 `json:"total"`
}

// List returns one page of products plus total and page count. Results
// are cached per distinct page window, search term and sort sequence.
func (s *ProductService) List(ctx context.Context, pagination constants.PaginationParams, sorts []sorting.Field) ([]dto.ProductResponse, int64, int, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	cacheKey := listCacheKey(constants.CacheKeyProductList, pagination, sorts)

	var cached cachedProductList
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		logger.DebugWithContext(ctx, "Product list served from cache").
			String("cache_key", cacheKey).
			Log()
		return cached.Products, cached.Total, pageTotal(cached.Total, pagination.Limit), nil
	}

	products, total, err := s.repo.List(ctx, pagination.Limit, pagination.Offset, pagination.Search, sorts)
	if err != nil {
		return nil, 0, 0, err
	}

	responses := lo.Map(products, func(p model.Product, _ int) dto.ProductResponse {
		return toProductResponse(&p)
	})

	s.cache.SetJSON(ctx, cacheKey, cachedProductList{Products: responses, Total: total})

	return responses, total, pageTotal(total, pagination.Limit), nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := toProductResponse(product)
	return &response, nil
}

func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.repo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, apperrors.ErrSKUExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	attributes, err := encodeAttributes(req.Attributes)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Attributes:  attributes,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyProductList)

	response := toProductResponse(product)
	return &response, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Attributes != nil {
		attributes, err := encodeAttributes(req.Attributes)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		updates["attributes"] = attributes
	}

	if len(updates) == 0 {
		return apperrors.WrapError(apperrors.ErrInvalidInput, errors.New("no fields to update"))
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyProductList)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyProductList)
	return nil
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func encodeAttributes(attributes map[string]any) (datatypes.JSON, error) {
	if attributes == nil {
		return nil, nil
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}
	return datatypes.JSON(data), nil
}

// listCacheKey builds a deterministic cache key from the page window and
// the requested sort sequence (order matters, it changes the result set).
func listCacheKey(prefix string, pagination constants.PaginationParams, sorts []sorting.Field) string {
	sortPart := strings.Join(lo.Map(sorts, func(f sorting.Field, _ int) string {
		return f.Name + ":" + f.Direction
	}), ",")

	return fmt.Sprintf("%spage=%d|limit=%d|search=%s|sort=%s",
		prefix, pagination.Page, pagination.Limit, pagination.Search, sortPart)
}

func pageTotal(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
