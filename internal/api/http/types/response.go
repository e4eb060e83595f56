// Package types provides HTTP response type definitions.
package types

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// BlockRequest 区块提交请求，block 为 SignedBlock 规范编码的十六进制
type BlockRequest struct {
	Block string `json:"block" binding:"required"`
}

// ValidateResult 验证结果
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	BlockID string `json:"blockId"`
}

// SubmitResult 追加结果
type SubmitResult struct {
	BlockID string `json:"blockId"`
	Account string `json:"account"`
	Height  uint64 `json:"height"`
}

// BlockView 区块视图
type BlockView struct {
	ID            string            `json:"id"`
	Account       string            `json:"account"`
	Height        uint64            `json:"height"`
	Balance       uint64            `json:"balance"`
	Previous      string            `json:"previous"`
	Version       uint64            `json:"version"`
	Timestamp     uint64            `json:"timestamp"`
	SignatureType string            `json:"signatureType"`
	PublicKey     string            `json:"publicKey"`
	Signature     string            `json:"signature"`
	Transactions  []TransactionView `json:"transactions"`
}

// TransactionView 交易视图
type TransactionView struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Receiver       string `json:"receiver,omitempty"`
	Amount         uint64 `json:"amount,omitempty"`
	SendID         string `json:"sendId,omitempty"`
	Representative string `json:"representative,omitempty"`
}

// TransactionRecordView 交易及其位置
type TransactionRecordView struct {
	TransactionView
	BlockID string `json:"blockId"`
	Index   int    `json:"index"`
	Account string `json:"account"`
}

// DelegateView 账户委托信息
type DelegateView struct {
	Account        string `json:"account"`
	Representative string `json:"representative"`
}

// ReadOnlyRequest 切换账本只读模式
type ReadOnlyRequest struct {
	Enabled *bool  `json:"enabled" binding:"required"`
	Reason  string `json:"reason"`
}
