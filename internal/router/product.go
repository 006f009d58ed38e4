package router

import (
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) productRoutes(version *gin.RouterGroup) {
	products := version.Group("/products")
	{
		// Browsing the catalog is public
		products.GET("", r.productHandler.List)
		products.GET("/:id", r.productHandler.GetByID)

		// Mutations require JWT authentication
		protected := products.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateProductRequest{} }),
				r.productHandler.Create)

			protected.PUT("/:id",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateProductRequest{} }),
				r.productHandler.Update)

			protected.DELETE("/:id", r.productHandler.Delete)
		}
	}
}
