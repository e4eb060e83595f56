// Package types provides HTTP error type definitions.
package types

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string      `json:"code"`                // 错误码
	Message   string      `json:"message"`             // 错误消息
	Kind      string      `json:"kind,omitempty"`      // 验证失败或节点错误类别
	TxIndex   *int        `json:"txIndex,omitempty"`   // 出错交易序号
	Retryable bool        `json:"retryable,omitempty"` // 调用方可重试
	Details   interface{} `json:"details,omitempty"`   // 详细信息
	RequestID string      `json:"requestId,omitempty"` // 请求ID
}

// 错误码常量
const (
	// 通用错误码（400-499）
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrNotFound        = "NOT_FOUND"

	// 区块错误码
	ErrBlockInvalid  = "BLOCK_INVALID"
	ErrBlockConflict = "BLOCK_CONFLICT"

	// 服务器错误码（500-599）
	ErrInternal           = "INTERNAL"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrSubmitDisabled     = "SUBMIT_DISABLED"
	ErrLedgerReadOnly     = "LEDGER_READ_ONLY"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}

// WithKind 添加错误类别
func (e *ErrorResponse) WithKind(kind string, retryable bool) *ErrorResponse {
	e.Error.Kind = kind
	e.Error.Retryable = retryable
	return e
}

// WithTxIndex 添加出错交易序号，负数表示区块级错误
func (e *ErrorResponse) WithTxIndex(index int) *ErrorResponse {
	if index >= 0 {
		e.Error.TxIndex = &index
	}
	return e
}
