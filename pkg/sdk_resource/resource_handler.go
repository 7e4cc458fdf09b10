package sdk_resource

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattiabonardi/endor-records/internal/middleware"
	"github.com/mattiabonardi/endor-records/internal/repository"
	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
)

// ResourceHandler serves list/get/create/update/delete for one record kind.
// R is the stored record, P its partial form.
type ResourceHandler[R any, P sdk_records.Patch[R]] struct {
	kind       sdk_records.Kind
	repository repository.RecordRepository[R]
	logger     *sdk.Logger
	now        func() time.Time
}

func NewResourceHandler[R any, P sdk_records.Patch[R]](kind sdk_records.Kind, repo repository.RecordRepository[R], logger *sdk.Logger) *ResourceHandler[R, P] {
	return &ResourceHandler[R, P]{
		kind:       kind,
		repository: repo,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source used to stamp creation dates.
func (h *ResourceHandler[R, P]) WithClock(now func() time.Time) *ResourceHandler[R, P] {
	h.now = now
	return h
}

func (h *ResourceHandler[R, P]) Kind() sdk_records.Kind {
	return h.kind
}

// Register mounts the handlers under /{path}.
func (h *ResourceHandler[R, P]) Register(router gin.IRouter) {
	group := router.Group("/" + h.kind.Path)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[R, P]) requestLogger(c *gin.Context, action string) *sdk.Logger {
	session := sdk.SessionFromRequest(c)
	logger := h.logger.WithContext(sdk.LogContext{
		UserID:      session.Username,
		UserSession: session.Id,
		Resource:    h.kind.Name,
		Action:      action,
		RequestID:   middleware.RequestIDFromContext(c),
	})
	logger.Info("Incoming request")
	return logger
}

// bindPatch decodes the body into a patch; an empty body is an empty patch.
func (h *ResourceHandler[R, P]) bindPatch(c *gin.Context) (P, error) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		return patch, err
	}
	return patch, nil
}

// fail writes the response for err. NotFound and malformed ids have fixed bodies;
// anything else is reported with failureMessage and the raw error.
func (h *ResourceHandler[R, P]) fail(c *gin.Context, logger *sdk.Logger, err error, failureMessage string) {
	status := sdk.StatusCode(err)
	switch status {
	case http.StatusNotFound:
		c.JSON(status, sdk.NewMessage(h.kind.Display+" not found"))
	case http.StatusBadRequest:
		c.JSON(status, sdk.NewErrorMessage("Invalid "+h.kind.Name+" id", err))
	default:
		logger.ErrorWithStackTrace(err)
		c.JSON(status, sdk.NewErrorMessage(failureMessage, err))
	}
}

func (h *ResourceHandler[R, P]) List(c *gin.Context) {
	logger := h.requestLogger(c, "list")

	records, err := h.repository.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, logger, err, "Error listing "+h.kind.Name+"s")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ResourceHandler[R, P]) Get(c *gin.Context) {
	logger := h.requestLogger(c, "get")

	record, err := h.repository.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, logger, err, "Error fetching "+h.kind.Name)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ResourceHandler[R, P]) Create(c *gin.Context) {
	logger := h.requestLogger(c, "create")

	patch, err := h.bindPatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, sdk.NewErrorMessage("Invalid "+h.kind.Name+" payload", err))
		return
	}

	saved, err := h.repository.Insert(c.Request.Context(), patch.Resolve(h.now()))
	if err != nil {
		logger.ErrorWithStackTrace(err)
		c.JSON(http.StatusInternalServerError, sdk.NewErrorMessage("Error creating "+h.kind.Name, err))
		return
	}

	c.JSON(http.StatusCreated, sdk.NewCreatedResponse(h.kind.Display+" created", h.kind.ResponseKey, saved))
}

func (h *ResourceHandler[R, P]) Update(c *gin.Context) {
	logger := h.requestLogger(c, "update")

	patch, err := h.bindPatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, sdk.NewErrorMessage("Invalid "+h.kind.Name+" payload", err))
		return
	}

	updated, err := h.repository.UpdateByID(c.Request.Context(), c.Param("id"), patch.Changes())
	if err != nil {
		h.fail(c, logger, err, "Error updating "+h.kind.Name)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ResourceHandler[R, P]) Delete(c *gin.Context) {
	logger := h.requestLogger(c, "delete")

	if err := h.repository.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, logger, err, "Error deleting "+h.kind.Name)
		return
	}

	c.JSON(http.StatusOK, sdk.NewMessage(h.kind.Display+" deleted"))
}
