package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// BlockHandlers 区块验证、追加与查询
type BlockHandlers struct {
	validator blockif.BlockValidator
	processor blockif.BlockProcessor
	store     ledgerif.Store
	views     viewBuilder
	logger    log.Logger
}

// NewBlockHandlers 创建区块处理器
func NewBlockHandlers(
	validator blockif.BlockValidator,
	processor blockif.BlockProcessor,
	store ledgerif.Store,
	ids blockif.IDCalculator,
	addresses crypto.AddressManager,
	logger log.Logger,
) *BlockHandlers {
	return &BlockHandlers{
		validator: validator,
		processor: processor,
		store:     store,
		views:     viewBuilder{ids: ids, addresses: addresses},
		logger:    logger,
	}
}

// Validate 只验证不写入
//
// **HTTP Method**: `POST`
// **URL Path**: `/v1/blocks/validate`
// **Body**: `{"block": "<SignedBlock 规范编码的十六进制>"}`
func (h *BlockHandlers) Validate(c *gin.Context) {
	block, ok := bindBlock(c)
	if !ok {
		return
	}
	if err := h.validator.ValidateBlock(c.Request.Context(), block); err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, apitypes.ValidateResult{
		Valid:   true,
		BlockID: h.views.ids.BlockID(block.Data).String(),
	})
}

// Submit 验证并追加到账本
//
// **HTTP Method**: `POST`
// **URL Path**: `/v1/blocks`
// 需要管理口令
func (h *BlockHandlers) Submit(c *gin.Context) {
	block, ok := bindBlock(c)
	if !ok {
		return
	}
	id, err := h.processor.ProcessBlock(c.Request.Context(), block)
	if err != nil {
		respondFailure(c, err)
		return
	}

	result := apitypes.SubmitResult{BlockID: id.String(), Height: block.Data.Height}
	if account, err := h.views.addresses.AccountIDFromPublicKey(block.PublicKey); err == nil {
		result.Account = h.views.addresses.Encode(account)
	}
	c.Header("Location", "/v1/blocks/"+result.BlockID)
	respondOK(c, http.StatusCreated, result)
}

// GetBlock 按区块ID查询
//
// **HTTP Method**: `GET`
// **URL Path**: `/v1/blocks/:id`
func (h *BlockHandlers) GetBlock(c *gin.Context) {
	id, err := types.ParseBlockID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error())
		return
	}
	block, err := h.store.GetBlock(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err, "区块")
		return
	}
	respondOK(c, http.StatusOK, h.views.block(block))
}
