package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
)

// HealthHandler 存活检查
type HealthHandler struct {
	startTime time.Time
	version   string
	gate      writegate.WriteGate // 可选
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, gate writegate.WriteGate) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), version: version, gate: gate}
}

// Health 返回进程存活状态与运行时长；账本只读时 status 为 read_only，状态码仍为 200
//
// **URL Path**: `/healthz`
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.gate != nil {
		status := h.gate.Status()
		if status.ReadOnly {
			body["status"] = "read_only"
		}
		body["ledger"] = status
	}
	c.JSON(http.StatusOK, body)
}
