package ledger

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// 交易记录编码：1 block_id(bytes) 2 index(varint) 3 account(bytes) 4 transaction(bytes)
func encodeRecord(blockID types.BlockID, index int, account types.AccountID, tx *types.Transaction) []byte {
	var out []byte
	out = protowire.AppendTag(out, 1, protowire.BytesType)
	out = protowire.AppendBytes(out, blockID[:])
	out = protowire.AppendTag(out, 2, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(index))
	out = protowire.AppendTag(out, 3, protowire.BytesType)
	out = protowire.AppendBytes(out, account[:])
	out = protowire.AppendTag(out, 4, protowire.BytesType)
	out = protowire.AppendBytes(out, tx.Marshal())
	return out
}

func decodeRecord(raw []byte) (*ledgerif.TransactionRecord, error) {
	rec := &ledgerif.TransactionRecord{}
	var txBytes []byte
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return nil, fmt.Errorf("交易记录损坏: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		switch {
		case num == 2 && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(raw)
			if m < 0 {
				return nil, fmt.Errorf("交易记录损坏: %w", protowire.ParseError(m))
			}
			rec.Index = int(v)
			raw = raw[m:]
		case typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(raw)
			if m < 0 {
				return nil, fmt.Errorf("交易记录损坏: %w", protowire.ParseError(m))
			}
			var err error
			switch num {
			case 1:
				rec.BlockID, err = types.BlockIDFromBytes(v)
			case 3:
				rec.Account, err = types.AccountIDFromBytes(v)
			case 4:
				txBytes = v
			}
			if err != nil {
				return nil, fmt.Errorf("交易记录损坏: %w", err)
			}
			raw = raw[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, raw)
			if m < 0 {
				return nil, fmt.Errorf("交易记录损坏: %w", protowire.ParseError(m))
			}
			raw = raw[m:]
		}
	}

	tx, err := types.UnmarshalTransaction(txBytes)
	if err != nil {
		return nil, err
	}
	rec.Transaction = tx
	return rec, nil
}
