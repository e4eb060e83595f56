package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
)

// defaultReadOnlyReason 未给出原因时使用
const defaultReadOnlyReason = "管理员维护"

// AdminHandlers 账本维护接口
type AdminHandlers struct {
	gate   writegate.WriteGate
	logger log.Logger
}

// NewAdminHandlers 创建维护接口处理器
func NewAdminHandlers(gate writegate.WriteGate, logger log.Logger) *AdminHandlers {
	return &AdminHandlers{gate: gate, logger: logger}
}

// GetReadOnly 查询写门闸状态
//
// **URL Path**: `/v1/admin/read-only`
func (h *AdminHandlers) GetReadOnly(c *gin.Context) {
	respondOK(c, http.StatusOK, h.gate.Status())
}

// SetReadOnly 切换只读模式，返回切换后的状态
//
// **HTTP Method**: `PUT`
// **URL Path**: `/v1/admin/read-only`
// **Body**: `{"enabled": true, "reason": "备份"}`
func (h *AdminHandlers) SetReadOnly(c *gin.Context) {
	var req apitypes.ReadOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "请求体格式错误: "+err.Error())
		return
	}

	if *req.Enabled {
		reason := req.Reason
		if reason == "" {
			reason = defaultReadOnlyReason
		}
		h.gate.EnterReadOnly(reason)
	} else {
		h.gate.ExitReadOnly()
	}
	if h.logger != nil {
		h.logger.Infof("账本写门闸已切换: read_only=%t reason=%q", *req.Enabled, req.Reason)
	}
	respondOK(c, http.StatusOK, h.gate.Status())
}
