// Package handlers 提供HTTP API处理器
package handlers

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billy1624/champ/internal/api/http/middleware"
	apitypes "github.com/billy1624/champ/internal/api/http/types"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// ==================== 响应辅助 ====================

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apitypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apitypes.NewErrorResponse(code, message, nil).WithRequestID(middleware.GetRequestID(c)))
}

// respondFailure 按错误类别映射状态码
//
//	验证失败         → 422（追加冲突 409）
//	可重试节点错误   → 503
//	账本只读         → 503（不带 Retry-After）
//	其它             → 500
func respondFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := apitypes.NewErrorResponse("", err.Error(), nil).WithRequestID(middleware.GetRequestID(c))

	var verr *types.ValidationError
	var nerr *types.NodeError
	switch {
	case errors.Is(err, ledgerif.ErrConflict):
		resp.Error.Code = apitypes.ErrBlockConflict
		resp.WithKind(types.PreviousBlockError.String(), false)
		c.AbortWithStatusJSON(http.StatusConflict, resp)
	case errors.Is(err, writegate.ErrReadOnly):
		resp.Error.Code = apitypes.ErrLedgerReadOnly
		resp.WithKind(types.StorageUnavailable.String(), false)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp)
	case errors.As(err, &verr):
		resp.Error.Code = apitypes.ErrBlockInvalid
		resp.WithKind(verr.Kind.String(), false).WithTxIndex(verr.TxIndex)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
	case errors.As(err, &nerr) && nerr.Retryable:
		resp.Error.Code = apitypes.ErrServiceUnavailable
		resp.WithKind(nerr.Kind.String(), true)
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp)
	case errors.As(err, &nerr):
		resp.Error.Code = apitypes.ErrInternal
		resp.WithKind(nerr.Kind.String(), false)
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	default:
		resp.Error.Code = apitypes.ErrInternal
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	}
}

// respondLookupError 查询接口：不存在返回 404，其它返回 500
func respondLookupError(c *gin.Context, err error, what string) {
	if errors.Is(err, ledgerif.ErrNotFound) || errors.Is(err, ledgerif.ErrNoLastBlock) {
		respondError(c, http.StatusNotFound, apitypes.ErrNotFound, what+"不存在")
		return
	}
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, err.Error())
}

// ==================== 请求解析 ====================

// bindBlock 解析请求体中的十六进制区块
func bindBlock(c *gin.Context) (*types.SignedBlock, bool) {
	var req apitypes.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "请求体格式错误: "+err.Error())
		return nil, false
	}
	raw, err := hex.DecodeString(req.Block)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "block 不是合法的十六进制")
		return nil, false
	}
	block, err := types.UnmarshalSignedBlock(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "区块解码失败: "+err.Error())
		return nil, false
	}
	return block, true
}
