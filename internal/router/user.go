package router

import (
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// All user routes require JWT authentication
		users.Use(r.jwtMw.RequireAuth())
		{
			users.GET("", r.userHandler.List)
			users.GET("/:id", r.userHandler.GetByID)

			users.POST("",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateUserRequest{} }),
				r.userHandler.Create)
		}
	}
}
