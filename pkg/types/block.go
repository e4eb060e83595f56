// Package types 定义账户链节点共享的数据结构
//
// 账户链模型：每个账户维护一条只追加的区块链，区块由账户私钥签名，
// 区块内交易只影响本账户余额（Send 扣减、Collect 收取、Delegate 不影响）。
package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// ================================================================================================
// 🎯 第一部分：标识符
// ================================================================================================

const (
	// AccountIDLength 账户ID长度（RIPEMD160(SHA256(pubkey))）
	AccountIDLength = 20

	// HashLength 区块ID、交易ID长度（SHA3-256）
	HashLength = 32

	// MaxTransactionsPerBlock 单个区块允许的最大交易数
	MaxTransactionsPerBlock = 255
)

// AccountID 账户标识
type AccountID [AccountIDLength]byte

// AccountIDFromBytes 从字节切片构造账户ID
func AccountIDFromBytes(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDLength {
		return id, fmt.Errorf("账户ID长度错误: 期望 %d, 实际 %d", AccountIDLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Bytes 返回账户ID的字节副本
func (a AccountID) Bytes() []byte {
	out := make([]byte, AccountIDLength)
	copy(out, a[:])
	return out
}

// Equal 与原始字节比较
func (a AccountID) Equal(b []byte) bool {
	return bytes.Equal(a[:], b)
}

// String 十六进制形式，Base58Check 形式见 crypto/address
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// BlockID 区块标识 = SHA3-256(BlockData 规范编码)
type BlockID [HashLength]byte

// ZeroBlockID 创世区块的 previous
var ZeroBlockID BlockID

// BlockIDFromBytes 从字节切片构造区块ID
func BlockIDFromBytes(b []byte) (BlockID, error) {
	var id BlockID
	if len(b) != HashLength {
		return id, fmt.Errorf("区块ID长度错误: 期望 %d, 实际 %d", HashLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseBlockID 解析十六进制区块ID
func ParseBlockID(s string) (BlockID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return BlockID{}, fmt.Errorf("区块ID不是合法的十六进制: %w", err)
	}
	return BlockIDFromBytes(raw)
}

// Bytes 返回区块ID的字节副本
func (id BlockID) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, id[:])
	return out
}

// IsZero 是否为全零ID
func (id BlockID) IsZero() bool {
	return id == ZeroBlockID
}

func (id BlockID) String() string {
	return hex.EncodeToString(id[:])
}

// TransactionID 交易标识 = SHA3-256(BlockID ‖ Transaction 规范编码)
type TransactionID [HashLength]byte

// TransactionIDFromBytes 从字节切片构造交易ID
func TransactionIDFromBytes(b []byte) (TransactionID, error) {
	var id TransactionID
	if len(b) != HashLength {
		return id, fmt.Errorf("交易ID长度错误: 期望 %d, 实际 %d", HashLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseTransactionID 解析十六进制交易ID
func ParseTransactionID(s string) (TransactionID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return TransactionID{}, fmt.Errorf("交易ID不是合法的十六进制: %w", err)
	}
	return TransactionIDFromBytes(raw)
}

// Bytes 返回交易ID的字节副本
func (id TransactionID) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, id[:])
	return out
}

func (id TransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// ================================================================================================
// 🎯 第二部分：区块与交易
// ================================================================================================

// SignatureType 区块签名算法
type SignatureType uint32

const (
	// SignatureEd25519 Ed25519 签名（默认）
	SignatureEd25519 SignatureType = 0
	// SignatureSecp256k1 secp256k1 ECDSA，DER 编码，消息先做 SHA-256
	SignatureSecp256k1 SignatureType = 1
)

func (t SignatureType) String() string {
	switch t {
	case SignatureEd25519:
		return "ed25519"
	case SignatureSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// BlockData 区块的签名内容
type BlockData struct {
	Version       uint32
	SignatureType SignatureType
	Balance       uint64 // 应用本区块全部交易后的账户余额
	Height        uint64 // 创世区块为 0
	Previous      []byte // 上一区块ID，创世区块为全零或空
	Transactions  []*Transaction
}

// SignedBlock 已签名区块
type SignedBlock struct {
	Signature []byte
	PublicKey []byte
	Timestamp uint64 // 不参与验证
	Data      *BlockData
}

// Transaction 区块内交易，Data 为 nil 表示载荷缺失
type Transaction struct {
	Data TxPayload
}

// TxPayload 交易载荷的封闭变体：*TxSend、*TxCollect、*TxDelegate
type TxPayload interface {
	isTxPayload()
}

// TxSend 转出：扣减发送方余额，指定接收方
type TxSend struct {
	Receiver []byte
	Amount   uint64
	Data     []byte
}

// TxCollect 收取：兑现此前发给本账户的 Send
type TxCollect struct {
	TransactionID []byte
}

// TxDelegate 委托：指定代表，不影响余额
type TxDelegate struct {
	Representative []byte
}

func (*TxSend) isTxPayload()     {}
func (*TxCollect) isTxPayload()  {}
func (*TxDelegate) isTxPayload() {}

// Send 返回 Send 载荷（若是）
func (t *Transaction) Send() (*TxSend, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.Data.(*TxSend)
	return s, ok && s != nil
}

// Collect 返回 Collect 载荷（若是）
func (t *Transaction) Collect() (*TxCollect, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.Data.(*TxCollect)
	return c, ok && c != nil
}

// Delegate 返回 Delegate 载荷（若是）
func (t *Transaction) Delegate() (*TxDelegate, bool) {
	if t == nil {
		return nil, false
	}
	d, ok := t.Data.(*TxDelegate)
	return d, ok && d != nil
}

// HasPayload 载荷是否存在
func (t *Transaction) HasPayload() bool {
	if t == nil || t.Data == nil {
		return false
	}
	switch p := t.Data.(type) {
	case *TxSend:
		return p != nil
	case *TxCollect:
		return p != nil
	case *TxDelegate:
		return p != nil
	}
	return false
}

// KindName 载荷类型名，用于日志和 API 输出
func (t *Transaction) KindName() string {
	if _, ok := t.Send(); ok {
		return "send"
	}
	if _, ok := t.Collect(); ok {
		return "collect"
	}
	if _, ok := t.Delegate(); ok {
		return "delegate"
	}
	return "empty"
}

// PreviousID 解析 previous 字段，空值视为全零
func (d *BlockData) PreviousID() (BlockID, bool) {
	if len(d.Previous) == 0 {
		return ZeroBlockID, true
	}
	id, err := BlockIDFromBytes(d.Previous)
	if err != nil {
		return BlockID{}, false
	}
	return id, true
}
