package router

import (
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		auth.POST("/login",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.UserLoginRequest{} }),
			r.authHandler.Login)

		auth.POST("/refresh", r.jwtMw.RequireAuth(), r.authHandler.Refresh)
	}
}
