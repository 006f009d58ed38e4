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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users with the same negotiated sorting as the
// product listing, against this endpoint's own policy.
func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "List")

	pagination := constants.ParsePaginationParams(c)

	sorts := sorting.NewRequest(c.Request.URL.RawQuery)
	sorts.SetPolicy(h.userService.SortPolicy())

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

	res, total, pageTotal, err := h.userService.List(ctx, pagination, sorts.AllSortedFields())
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to list users").
			Int("page", pagination.Page).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to fetch users", err.Error()))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(total, pagination.Page, pageTotal, res))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetByID")

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user ID", nil))
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to fetch user").
			Int("user_id", int(id)).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to fetch user", err.Error()))
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Create")

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid request body for user creation").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	user, err := h.userService.Create(ctx, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", req.Email).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("Failed to create user", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, user)
}
