package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// AccountHandlers 账户查询
type AccountHandlers struct {
	store ledgerif.Store
	views viewBuilder
}

// NewAccountHandlers 创建账户查询处理器
func NewAccountHandlers(store ledgerif.Store, ids blockif.IDCalculator, addresses crypto.AddressManager) *AccountHandlers {
	return &AccountHandlers{
		store: store,
		views: viewBuilder{ids: ids, addresses: addresses},
	}
}

// GetHead 账户头区块
//
// **URL Path**: `/v1/accounts/:account/head`
func (h *AccountHandlers) GetHead(c *gin.Context) {
	account, ok := h.bindAccount(c)
	if !ok {
		return
	}
	block, err := h.store.GetHeadBlock(c.Request.Context(), account)
	if err != nil {
		respondLookupError(c, err, "账户头区块")
		return
	}
	respondOK(c, http.StatusOK, h.views.block(block))
}

// GetBlockByHeight 账户指定高度的区块
//
// **URL Path**: `/v1/accounts/:account/blocks/:height`
func (h *AccountHandlers) GetBlockByHeight(c *gin.Context) {
	account, ok := h.bindAccount(c)
	if !ok {
		return
	}
	height, err := strconv.ParseUint(c.Param("height"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "高度必须为非负整数")
		return
	}
	block, err := h.store.GetBlockByHeight(c.Request.Context(), account, height)
	if err != nil {
		respondLookupError(c, err, "区块")
		return
	}
	respondOK(c, http.StatusOK, h.views.block(block))
}

// GetDelegate 账户当前代表
//
// **URL Path**: `/v1/accounts/:account/delegate`
func (h *AccountHandlers) GetDelegate(c *gin.Context) {
	account, ok := h.bindAccount(c)
	if !ok {
		return
	}
	rep, err := h.store.GetAccountDelegate(c.Request.Context(), account)
	if err != nil {
		respondLookupError(c, err, "委托")
		return
	}
	respondOK(c, http.StatusOK, apitypes.DelegateView{
		Account:        h.views.addresses.Encode(account),
		Representative: h.views.accountString(rep),
	})
}

// GetDelegators 委托给该账户的账户列表
//
// **URL Path**: `/v1/accounts/:account/delegators`
func (h *AccountHandlers) GetDelegators(c *gin.Context) {
	account, ok := h.bindAccount(c)
	if !ok {
		return
	}
	accounts, err := h.store.GetDelegatedAccounts(c.Request.Context(), account.Bytes())
	if err != nil {
		respondLookupError(c, err, "委托")
		return
	}
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, h.views.addresses.Encode(a))
	}
	respondOK(c, http.StatusOK, out)
}

func (h *AccountHandlers) bindAccount(c *gin.Context) (types.AccountID, bool) {
	account, err := h.views.addresses.Decode(c.Param("account"))
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "账户地址无效: "+err.Error())
		return types.AccountID{}, false
	}
	return account, true
}
