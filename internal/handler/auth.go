package handler

import (
	"net/http"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
	"github.com/Payphone-Digital/catalog-api/internal/service"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *service.UserService
	jwtService  *service.JWTService
}

func NewAuthHandler(userService *service.UserService, jwtService *service.JWTService) *AuthHandler {
	return &AuthHandler{userService: userService, jwtService: jwtService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Login")

	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request body").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	res, err := h.userService.Login(ctx, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	logger.InfoWithContext(ctx, "Login succeeded").
		String("email", req.Email).
		Int("user_id", int(res.User.ID)).
		Log()

	c.JSON(http.StatusOK, res)
}

// Refresh handles POST /auth/refresh. It runs behind the JWT middleware,
// so an authenticated caller trades a valid token for a fresh one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Refresh")

	userID, ok := ctxutil.GetUserIDUint(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Token refresh failed").
			Int("user_id", int(userID)).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate refreshed token").
			Int("user_id", int(userID)).
			Err(err).
			Log()
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, nil))
		return
	}

	c.JSON(http.StatusOK, dto.UserLoginResponse{
		Token:     token,
		ExpiresIn: int(h.jwtService.Expiry().Seconds()),
		User:      *user,
	})
}
