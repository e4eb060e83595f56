package types

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// 规范编码：proto3 线格式，字段按编号升序，零值省略，解码跳过未知字段。
//
//	SignedBlock: 1 signature  2 public_key  3 timestamp  4 data
//	BlockData:   1 version  2 signature_type  3 balance  4 height  5 previous  6 transactions
//	Transaction: 1 tx_send  2 tx_collect  3 tx_delegate (oneof)
//	TxSend:      1 receiver  2 amount  3 data
//	TxCollect:   1 transaction_id
//	TxDelegate:  1 representative

// ErrInvalidEncoding 编码数据无法解析
var ErrInvalidEncoding = errors.New("区块编码无效")

// unknownField 由字段访问函数返回，表示交给 ConsumeFieldValue 跳过
const unknownField = math.MinInt32

// ==================== 编码 ====================

// Marshal 返回 SignedBlock 的规范编码
func (b *SignedBlock) Marshal() []byte {
	if b == nil {
		return nil
	}
	var out []byte
	out = appendBytesField(out, 1, b.Signature)
	out = appendBytesField(out, 2, b.PublicKey)
	out = appendVarintField(out, 3, b.Timestamp)
	if b.Data != nil {
		out = appendMessageField(out, 4, b.Data.Marshal())
	}
	return out
}

// Marshal 返回 BlockData 的规范编码（签名与区块ID的输入）
func (d *BlockData) Marshal() []byte {
	if d == nil {
		return nil
	}
	var out []byte
	out = appendVarintField(out, 1, uint64(d.Version))
	out = appendVarintField(out, 2, uint64(d.SignatureType))
	out = appendVarintField(out, 3, d.Balance)
	out = appendVarintField(out, 4, d.Height)
	out = appendBytesField(out, 5, d.Previous)
	for _, tx := range d.Transactions {
		out = appendMessageField(out, 6, tx.Marshal())
	}
	return out
}

// Marshal 返回 Transaction 的规范编码（交易ID的输入）
func (t *Transaction) Marshal() []byte {
	if t == nil {
		return nil
	}
	var out []byte
	switch p := t.Data.(type) {
	case *TxSend:
		if p != nil {
			var inner []byte
			inner = appendBytesField(inner, 1, p.Receiver)
			inner = appendVarintField(inner, 2, p.Amount)
			inner = appendBytesField(inner, 3, p.Data)
			out = appendMessageField(out, 1, inner)
		}
	case *TxCollect:
		if p != nil {
			out = appendMessageField(out, 2, appendBytesField(nil, 1, p.TransactionID))
		}
	case *TxDelegate:
		if p != nil {
			out = appendMessageField(out, 3, appendBytesField(nil, 1, p.Representative))
		}
	}
	return out
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessageField 子消息即使为空也要写出，保留 oneof 与重复字段的存在性
func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// ==================== 解码 ====================

// UnmarshalSignedBlock 解析 SignedBlock
func UnmarshalSignedBlock(raw []byte) (*SignedBlock, error) {
	b := &SignedBlock{}
	err := decodeFields(raw, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
		switch num {
		case 1:
			return consumeBytes(typ, in, &b.Signature), nil
		case 2:
			return consumeBytes(typ, in, &b.PublicKey), nil
		case 3:
			return consumeVarint(typ, in, &b.Timestamp), nil
		case 4:
			var msg []byte
			n := consumeBytes(typ, in, &msg)
			if n < 0 {
				return n, nil
			}
			data, err := UnmarshalBlockData(msg)
			if err != nil {
				return 0, err
			}
			b.Data = data
			return n, nil
		}
		return unknownField, nil
	})
	if err != nil {
		return nil, fmt.Errorf("解析 SignedBlock 失败: %w", err)
	}
	return b, nil
}

// UnmarshalBlockData 解析 BlockData
func UnmarshalBlockData(raw []byte) (*BlockData, error) {
	d := &BlockData{}
	err := decodeFields(raw, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
		switch num {
		case 1:
			var v uint64
			n := consumeVarint(typ, in, &v)
			d.Version = uint32(v)
			return n, nil
		case 2:
			var v uint64
			n := consumeVarint(typ, in, &v)
			d.SignatureType = SignatureType(uint32(v))
			return n, nil
		case 3:
			return consumeVarint(typ, in, &d.Balance), nil
		case 4:
			return consumeVarint(typ, in, &d.Height), nil
		case 5:
			return consumeBytes(typ, in, &d.Previous), nil
		case 6:
			var msg []byte
			n := consumeBytes(typ, in, &msg)
			if n < 0 {
				return n, nil
			}
			tx, err := UnmarshalTransaction(msg)
			if err != nil {
				return 0, err
			}
			d.Transactions = append(d.Transactions, tx)
			return n, nil
		}
		return unknownField, nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// UnmarshalTransaction 解析 Transaction
func UnmarshalTransaction(raw []byte) (*Transaction, error) {
	t := &Transaction{}
	err := decodeFields(raw, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
		if num < 1 || num > 3 {
			return unknownField, nil
		}
		var msg []byte
		n := consumeBytes(typ, in, &msg)
		if n < 0 {
			return n, nil
		}
		var err error
		switch num {
		case 1:
			t.Data, err = unmarshalTxSend(msg)
		case 2:
			c := &TxCollect{}
			err = decodeFields(msg, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
				if num == 1 {
					return consumeBytes(typ, in, &c.TransactionID), nil
				}
				return unknownField, nil
			})
			t.Data = c
		case 3:
			d := &TxDelegate{}
			err = decodeFields(msg, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
				if num == 1 {
					return consumeBytes(typ, in, &d.Representative), nil
				}
				return unknownField, nil
			})
			t.Data = d
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func unmarshalTxSend(raw []byte) (*TxSend, error) {
	s := &TxSend{}
	err := decodeFields(raw, func(num protowire.Number, typ protowire.Type, in []byte) (int, error) {
		switch num {
		case 1:
			return consumeBytes(typ, in, &s.Receiver), nil
		case 2:
			return consumeVarint(typ, in, &s.Amount), nil
		case 3:
			return consumeBytes(typ, in, &s.Data), nil
		}
		return unknownField, nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// decodeFields 逐字段遍历，visit 返回已消费的字节数；
// 返回 unknownField 或线类型不匹配时跳过该字段
func decodeFields(raw []byte, visit func(num protowire.Number, typ protowire.Type, in []byte) (int, error)) error {
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return parseError(n)
		}
		raw = raw[n:]

		m, err := visit(num, typ, raw)
		if err != nil {
			return err
		}
		if m == unknownField {
			m = protowire.ConsumeFieldValue(num, typ, raw)
		}
		if m < 0 {
			return parseError(m)
		}
		raw = raw[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, in []byte, dst *uint64) int {
	if typ != protowire.VarintType {
		return unknownField
	}
	v, n := protowire.ConsumeVarint(in)
	if n < 0 {
		return n
	}
	*dst = v
	return n
}

func consumeBytes(typ protowire.Type, in []byte, dst *[]byte) int {
	if typ != protowire.BytesType {
		return unknownField
	}
	v, n := protowire.ConsumeBytes(in)
	if n < 0 {
		return n
	}
	if len(v) == 0 {
		*dst = nil
	} else {
		*dst = append([]byte(nil), v...)
	}
	return n
}

func parseError(n int) error {
	return fmt.Errorf("%w: %v", ErrInvalidEncoding, protowire.ParseError(n))
}
