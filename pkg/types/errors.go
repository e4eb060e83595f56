package types

import (
	"errors"
	"fmt"
)

// ================================================================================================
// 验证失败：区块本身不合法，永不重试
// ================================================================================================

// ValidationKind 验证失败类别（封闭集合）
type ValidationKind uint8

const (
	TxValidationError ValidationKind = iota + 1
	BlockHeightError
	PreviousBlockError
	TransactionDataNotFound
	SendTxNotFound
	MissmatchedTx
	DuplicatedTx
	TooManyTransactions
	SignatureInvalid
	DoubleClaim
)

var validationKindNames = map[ValidationKind]string{
	TxValidationError:       "TxValidationError",
	BlockHeightError:        "BlockHeightError",
	PreviousBlockError:      "PreviousBlockError",
	TransactionDataNotFound: "TransactionDataNotFound",
	SendTxNotFound:          "SendTxNotFound",
	MissmatchedTx:           "MissmatchedTx",
	DuplicatedTx:            "DuplicatedTx",
	TooManyTransactions:     "TooManyTransactions",
	SignatureInvalid:        "SignatureInvalid",
	DoubleClaim:             "DoubleClaim",
}

func (k ValidationKind) String() string {
	if name, ok := validationKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ValidationKind(%d)", uint8(k))
}

// Error 使类别本身可作为 errors.Is 的目标
func (k ValidationKind) Error() string {
	return "区块验证失败: " + k.String()
}

// ValidationError 验证失败详情
type ValidationError struct {
	Kind    ValidationKind
	TxIndex int    // 触发失败的交易序号，-1 表示与具体交易无关
	Detail  string // 人类可读说明
	Err     error  // 底层原因（可选）
}

// NewValidationError 创建与具体交易无关的验证失败
func NewValidationError(kind ValidationKind, detail string) *ValidationError {
	return &ValidationError{Kind: kind, TxIndex: -1, Detail: detail}
}

// NewTxValidationError 创建指向某笔交易的验证失败
func NewTxValidationError(kind ValidationKind, index int, detail string) *ValidationError {
	return &ValidationError{Kind: kind, TxIndex: index, Detail: detail}
}

// WithCause 附加底层原因
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.Err = err
	return e
}

func (e *ValidationError) Error() string {
	msg := e.Kind.Error()
	if e.TxIndex >= 0 {
		msg = fmt.Sprintf("%s (交易 #%d)", msg, e.TxIndex)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ================================================================================================
// 节点错误：节点自身无法完成验证，区块未必非法
// ================================================================================================

// NodeKind 节点错误类别（封闭集合）
type NodeKind uint8

const (
	BlockDataNotFound NodeKind = iota + 1
	BlockNotFound
	TxNotFound
	StorageTimeout
	StorageUnavailable
)

var nodeKindNames = map[NodeKind]string{
	BlockDataNotFound:  "BlockDataNotFound",
	BlockNotFound:      "BlockNotFound",
	TxNotFound:         "TxNotFound",
	StorageTimeout:     "StorageTimeout",
	StorageUnavailable: "StorageUnavailable",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

func (k NodeKind) Error() string {
	return "节点错误: " + k.String()
}

// NodeError 节点错误详情
type NodeError struct {
	Kind      NodeKind
	Retryable bool
	Err       error
}

// NewNodeError 创建节点错误，仅存储超时可重试
func NewNodeError(kind NodeKind, err error) *NodeError {
	return &NodeError{Kind: kind, Retryable: kind == StorageTimeout, Err: err}
}

func (e *NodeError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *NodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ==================== 判定辅助 ====================

// IsValidationError 是否为验证失败
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNodeError 是否为节点错误
func IsNodeError(err error) bool {
	var ne *NodeError
	return errors.As(err, &ne)
}

// IsRetryable 是否为可重试的节点错误
func IsRetryable(err error) bool {
	var ne *NodeError
	return errors.As(err, &ne) && ne.Retryable
}

// ValidationKindOf 提取验证失败类别
func ValidationKindOf(err error) (ValidationKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	var k ValidationKind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}

// NodeKindOf 提取节点错误类别
func NodeKindOf(err error) (NodeKind, bool) {
	var ne *NodeError
	if errors.As(err, &ne) {
		return ne.Kind, true
	}
	var k NodeKind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}
