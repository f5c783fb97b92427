package handler

import (
	"net/http"

	"github.com/fixmycity/issue-service/internal/service"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Get(c *gin.Context) {
	counts := h.svc.Compute(c.Request.Context())
	c.JSON(http.StatusOK, counts)
}
