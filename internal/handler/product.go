package handler

import (
	"net/http"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
	"github.com/Payphone-Digital/catalog-api/internal/service"
	"github.com/Payphone-Digital/catalog-api/internal/sorting"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /products with pagination, search and negotiated
// sorting (sort[field]=direction, validated against the endpoint policy).
func (h *ProductHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "List")

	pagination := constants.ParsePaginationParams(c)

	sorts := sorting.NewRequest(c.Request.URL.RawQuery)
	sorts.SetPolicy(h.productService.SortPolicy())

	if err := sorts.Validate(); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Rejected sort parameters").
			String("query", c.Request.URL.RawQuery).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Invalid sort parameters", err.Error()))
		return
	}

	logger.InfoWithContext(ctx, "List products request").
		Int("page", pagination.Page).
		Int("limit", pagination.Limit).
		String("search", pagination.Search).
		Int("sort_count", len(sorts.AllSortedFields())).
		Log()

	res, total, pageTotal, err := h.productService.List(ctx, pagination, sorts.AllSortedFields())
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to list products").
			Int("page", pagination.Page).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to fetch products", err.Error()))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(total, pagination.Page, pageTotal, res))
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetByID")

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid product ID", nil))
		return
	}

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to fetch product").
			Int("product_id", int(id)).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to fetch product", err.Error()))
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Create")

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid request body for product creation").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to create product").
			String("sku", req.SKU).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to create product", err.Error()))
		return
	}

	logger.InfoWithContext(ctx, "Product created").
		String("sku", product.SKU).
		Int("product_id", int(product.ID)).
		Log()

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Update")

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid product ID", nil))
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	if err := h.productService.Update(ctx, id, &req); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to update product").
			Int("product_id", int(id)).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to update product", err.Error()))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUpdated))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Delete")

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid product ID", nil))
		return
	}

	if err := h.productService.Delete(ctx, id); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to delete product").
			Int("product_id", int(id)).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to delete product", err.Error()))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
