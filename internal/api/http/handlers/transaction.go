package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// TransactionHandlers 交易查询
type TransactionHandlers struct {
	store ledgerif.Store
	views viewBuilder
}

// NewTransactionHandlers 创建交易查询处理器
func NewTransactionHandlers(store ledgerif.Store, ids blockif.IDCalculator, addresses crypto.AddressManager) *TransactionHandlers {
	return &TransactionHandlers{
		store: store,
		views: viewBuilder{ids: ids, addresses: addresses},
	}
}

// GetTransaction 按交易ID查询交易及其位置
//
// **URL Path**: `/v1/transactions/:id`
func (h *TransactionHandlers) GetTransaction(c *gin.Context) {
	id, err := types.ParseTransactionID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error())
		return
	}
	rec, err := h.store.GetTransactionRecord(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err, "交易")
		return
	}
	view := h.views.record(rec)

	if _, isSend := rec.Transaction.Send(); isSend {
		claimed, err := h.store.IsClaimed(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, err, "领取标记")
			return
		}
		respondOK(c, http.StatusOK, gin.H{"transaction": view, "claimed": claimed})
		return
	}
	respondOK(c, http.StatusOK, gin.H{"transaction": view})
}
