package calculation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PokerPal/internal/equity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /calculate  body: {hands, board, num_sims?, seed?}
func (h *Handler) Calculate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Response: equity.ErrorResponse(len(req.Hands), bindError(err)),
		})
		return
	}
	resp, err := h.svc.Calculate(c.Request.Context(), req)
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusRequestTimeout, resp)
		return
	}
	// 参数错误同样以 200 + error 字段返回，与前端约定一致
	c.JSON(http.StatusOK, resp)
}

// GET /calculations/:id
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "calculation not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// bindError turns a missing field into "Missing required field: hands".
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("Missing required field: %s", strings.ToLower(ve[0].Field()))
	}
	return fmt.Errorf("Invalid request body: %w", err)
}
