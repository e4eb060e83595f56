package handlers

import (
	"encoding/hex"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// viewBuilder 领域对象到 JSON 视图的转换
type viewBuilder struct {
	ids       blockif.IDCalculator
	addresses crypto.AddressManager
}

// accountString 20 字节按 Base58Check 输出，其它长度按十六进制
func (v viewBuilder) accountString(raw []byte) string {
	id, err := types.AccountIDFromBytes(raw)
	if err != nil {
		return hex.EncodeToString(raw)
	}
	return v.addresses.Encode(id)
}

func (v viewBuilder) block(blk *types.SignedBlock) apitypes.BlockView {
	data := blk.Data
	if data == nil {
		data = &types.BlockData{}
	}
	id := v.ids.BlockID(data)

	view := apitypes.BlockView{
		ID:            id.String(),
		Height:        data.Height,
		Balance:       data.Balance,
		Previous:      hex.EncodeToString(data.Previous),
		Version:       uint64(data.Version),
		Timestamp:     blk.Timestamp,
		SignatureType: data.SignatureType.String(),
		PublicKey:     hex.EncodeToString(blk.PublicKey),
		Signature:     hex.EncodeToString(blk.Signature),
		Transactions:  make([]apitypes.TransactionView, 0, len(data.Transactions)),
	}
	if account, err := v.addresses.AccountIDFromPublicKey(blk.PublicKey); err == nil {
		view.Account = v.addresses.Encode(account)
	}
	for _, tx := range data.Transactions {
		view.Transactions = append(view.Transactions, v.transaction(v.ids.TransactionID(id, tx), tx))
	}
	return view
}

func (v viewBuilder) transaction(id types.TransactionID, tx *types.Transaction) apitypes.TransactionView {
	view := apitypes.TransactionView{ID: id.String(), Kind: tx.KindName()}
	if send, ok := tx.Send(); ok {
		view.Receiver = v.accountString(send.Receiver)
		view.Amount = send.Amount
	}
	if collect, ok := tx.Collect(); ok {
		view.SendID = hex.EncodeToString(collect.TransactionID)
	}
	if delegate, ok := tx.Delegate(); ok {
		view.Representative = v.accountString(delegate.Representative)
	}
	return view
}

func (v viewBuilder) record(rec *ledgerif.TransactionRecord) apitypes.TransactionRecordView {
	return apitypes.TransactionRecordView{
		TransactionView: v.transaction(v.ids.TransactionID(rec.BlockID, rec.Transaction), rec.Transaction),
		BlockID:         rec.BlockID.String(),
		Index:           rec.Index,
		Account:         v.addresses.Encode(rec.Account),
	}
}
