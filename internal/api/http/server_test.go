package http_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/billy1624/champ/internal/api/http"
	apiconfig "github.com/billy1624/champ/internal/config/api"
	genesisconfig "github.com/billy1624/champ/internal/config/genesis"
	validatorconfig "github.com/billy1624/champ/internal/config/validator"
	"github.com/billy1624/champ/internal/core/block/processor"
	"github.com/billy1624/champ/internal/core/block/testutil"
	"github.com/billy1624/champ/internal/core/block/validator"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/password"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/signature"
	"github.com/billy1624/champ/internal/core/infrastructure/writegate"
	wgif "github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

const adminPassword = "correct horse battery staple"

// ==================== 测试夹具 ====================

type env struct {
	c        *testutil.Crypto
	store    ledgerif.Store
	alice    *testutil.Account
	handler  http.Handler
	registry *prometheus.Registry
}

type envOption func(*apihttp.Dependencies)

func newEnv(t *testing.T, store ledgerif.Store, c *testutil.Crypto, opts ...envOption) *env {
	t.Helper()

	hasher := password.NewHasher()
	hash, err := hasher.Hash(adminPassword)
	require.NoError(t, err)

	v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses, nil, nil, nil, nil)
	require.NoError(t, err)
	p, err := processor.NewService(v, store, c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)

	options := apiconfig.New(nil).GetOptions()
	options.AdminPasswordHash = hash
	registry := prometheus.NewRegistry()

	deps := apihttp.Dependencies{
		Options:        options,
		Validator:      v,
		Processor:      p,
		Store:          store,
		IDCalculator:   c.IDs,
		AddressManager: c.Addresses,
		PasswordHasher: hasher,
		Registry:       registry,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	server, err := apihttp.NewServer(deps)
	require.NoError(t, err)

	return &env{c: c, store: store, alice: c.NewAccount(t), handler: server.Handler(), registry: registry}
}

// withGate 为处理器与维护接口接入写门闸
func withGate(t *testing.T, gate wgif.WriteGate) envOption {
	return func(d *apihttp.Dependencies) {
		p, err := processor.NewService(d.Validator, d.Store, d.IDCalculator, d.AddressManager, gate, nil, nil)
		require.NoError(t, err)
		d.Processor = p
		d.WriteGate = gate
	}
}

// withInitialBalance 以指定创世余额重建验证器与处理器，需放在其它选项之前
func withInitialBalance(t *testing.T, balance uint64) envOption {
	return func(d *apihttp.Dependencies) {
		v, err := validator.NewService(d.Store, d.IDCalculator, signature.NewSignatureService(), d.AddressManager, nil,
			&genesisconfig.GenesisOptions{InitialBalance: balance, Allotments: map[string]uint64{}}, nil, nil)
		require.NoError(t, err)
		p, err := processor.NewService(v, d.Store, d.IDCalculator, d.AddressManager, nil, nil, nil)
		require.NoError(t, err)
		d.Validator = v
		d.Processor = p
	}
}

func newBadgerEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()
	c := testutil.NewCrypto(t)
	return newEnv(t, c.NewBadgerLedger(t, true), c, opts...)
}

func (e *env) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func blockBody(block *types.SignedBlock) map[string]string {
	return map[string]string{"block": hex.EncodeToString(block.Marshal())}
}

func adminHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + adminPassword}
}

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Kind      string `json:"kind"`
		TxIndex   *int   `json:"txIndex"`
		Retryable bool   `json:"retryable"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	require.NoError(t, json.Unmarshal(body.Data, out))
}

// ==================== 验证接口 ====================

func TestValidate_ValidGenesis_Returns200(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t)
	block := e.c.Sign(t, e.alice, testutil.Genesis(0))

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks/validate", blockBody(block), nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Valid   bool   `json:"valid"`
		BlockID string `json:"blockId"`
	}
	decodeData(t, rec, &result)
	assert.True(t, result.Valid)
	assert.Equal(t, e.c.IDs.BlockID(block.Data).String(), result.BlockID)

	_, err := e.store.GetHeadBlock(context.Background(), e.alice.ID)
	assert.ErrorIs(t, err, ledgerif.ErrNoLastBlock)
}

func TestValidate_InvalidBlock_Returns422WithKind(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t)
	data := testutil.Genesis(0, testutil.Delegate(nil), testutil.Delegate(nil))

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks/validate", blockBody(e.c.Sign(t, e.alice, data)), nil)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	body := decodeError(t, rec)
	assert.Equal(t, "BLOCK_INVALID", body.Error.Code)
	assert.Equal(t, types.DuplicatedTx.String(), body.Error.Kind)
	require.NotNil(t, body.Error.TxIndex)
	assert.Equal(t, 1, *body.Error.TxIndex)
	assert.False(t, body.Error.Retryable)
}

func TestValidate_MalformedBody_Returns400(t *testing.T) {
	e := newBadgerEnv(t)

	cases := map[string]interface{}{
		"缺少字段":  map[string]string{},
		"非十六进制": map[string]string{"block": "zz"},
		"截断编码":  map[string]string{"block": "0a05"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/v1/blocks/validate", body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Error.Code)
		})
	}
}

func TestValidate_StorageTimeout_Returns503(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewMockLedger()
	store.Delay = time.Second
	e := newEnv(t, store, c, func(d *apihttp.Dependencies) {
		v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses,
			&validatorconfig.ValidatorOptions{StorageTimeout: 10 * time.Millisecond, MaxTransactions: 255, MaxConcurrentLookups: 4},
			nil, nil, nil)
		require.NoError(t, err)
		d.Validator = v
	})

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks/validate", blockBody(c.Sign(t, e.alice, testutil.Genesis(0))), nil)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
	body := decodeError(t, rec)
	assert.Equal(t, types.StorageTimeout.String(), body.Error.Kind)
	assert.True(t, body.Error.Retryable)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

// ==================== 追加接口 ====================

func TestSubmit_Authentication(t *testing.T) {
	e := newBadgerEnv(t)
	body := blockBody(e.c.Sign(t, e.alice, testutil.Genesis(0)))

	cases := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"无口令", nil, http.StatusUnauthorized},
		{"错误口令", map[string]string{"Authorization": "Bearer wrong"}, http.StatusUnauthorized},
		{"非 Bearer", map[string]string{"Authorization": "Basic " + adminPassword}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/v1/blocks", body, tc.headers)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Error.Code)
		})
	}

	_, err := e.store.GetHeadBlock(context.Background(), e.alice.ID)
	assert.ErrorIs(t, err, ledgerif.ErrNoLastBlock)
}

func TestSubmit_NoPasswordConfigured_Returns403(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t, func(d *apihttp.Dependencies) {
		d.Options.AdminPasswordHash = ""
	})

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(e.c.Sign(t, e.alice, testutil.Genesis(0))), adminHeader())

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "SUBMIT_DISABLED", decodeError(t, rec).Error.Code)
}

func TestSubmit_ValidChain_Returns201AndIsQueryable(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t)
	bob := e.c.NewAccount(t)
	genesis := e.c.Sign(t, e.alice, testutil.Genesis(0, testutil.Delegate(bob.ID.Bytes())))

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader())

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result struct {
		BlockID string `json:"blockId"`
		Account string `json:"account"`
		Height  uint64 `json:"height"`
	}
	decodeData(t, rec, &result)
	blockID := e.c.IDs.BlockID(genesis.Data).String()
	aliceAddr := e.c.Addresses.Encode(e.alice.ID)
	assert.Equal(t, blockID, result.BlockID)
	assert.Equal(t, aliceAddr, result.Account)
	assert.Equal(t, "/v1/blocks/"+blockID, rec.Header().Get("Location"))

	head := e.do(t, http.MethodGet, "/v1/accounts/"+aliceAddr+"/head", nil, nil)
	require.Equal(t, http.StatusOK, head.Code, head.Body.String())
	var view struct {
		ID           string `json:"id"`
		Account      string `json:"account"`
		Height       uint64 `json:"height"`
		Transactions []struct {
			Kind           string `json:"kind"`
			Representative string `json:"representative"`
		} `json:"transactions"`
	}
	decodeData(t, head, &view)
	assert.Equal(t, blockID, view.ID)
	assert.Equal(t, aliceAddr, view.Account)
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, "delegate", view.Transactions[0].Kind)
	assert.Equal(t, e.c.Addresses.Encode(bob.ID), view.Transactions[0].Representative)

	byID := e.do(t, http.MethodGet, "/v1/blocks/"+blockID, nil, nil)
	assert.Equal(t, http.StatusOK, byID.Code)
	byHeight := e.do(t, http.MethodGet, "/v1/accounts/"+aliceAddr+"/blocks/0", nil, nil)
	assert.Equal(t, http.StatusOK, byHeight.Code)

	delegate := e.do(t, http.MethodGet, "/v1/accounts/"+aliceAddr+"/delegate", nil, nil)
	require.Equal(t, http.StatusOK, delegate.Code, delegate.Body.String())
	var dv struct {
		Representative string `json:"representative"`
	}
	decodeData(t, delegate, &dv)
	assert.Equal(t, e.c.Addresses.Encode(bob.ID), dv.Representative)

	delegators := e.do(t, http.MethodGet, "/v1/accounts/"+e.c.Addresses.Encode(bob.ID)+"/delegators", nil, nil)
	require.Equal(t, http.StatusOK, delegators.Code)
	var accounts []string
	decodeData(t, delegators, &accounts)
	assert.Equal(t, []string{aliceAddr}, accounts)
}

func TestSubmit_IdenticalGenesisFromTwoAccounts_BothReturn201(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t, withInitialBalance(t, 1000))
	carol := e.c.NewAccount(t)
	aGenesis := e.c.Sign(t, e.alice, testutil.Genesis(1000))
	cGenesis := e.c.Sign(t, carol, testutil.Genesis(1000))

	// Act
	aRec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(aGenesis), adminHeader())
	cRec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(cGenesis), adminHeader())

	// Assert
	require.Equal(t, http.StatusCreated, aRec.Code, aRec.Body.String())
	require.Equal(t, http.StatusCreated, cRec.Code, cRec.Body.String())

	for _, acct := range []*testutil.Account{e.alice, carol} {
		addr := e.c.Addresses.Encode(acct.ID)
		head := e.do(t, http.MethodGet, "/v1/accounts/"+addr+"/head", nil, nil)
		require.Equal(t, http.StatusOK, head.Code, head.Body.String())
		var view struct {
			Account string `json:"account"`
			Height  uint64 `json:"height"`
		}
		decodeData(t, head, &view)
		assert.Equal(t, addr, view.Account)
		assert.Equal(t, uint64(0), view.Height)
	}
}

// conflictValidator 放行所有区块，让冲突在账本追加阶段出现
type conflictValidator struct{}

func (conflictValidator) ValidateBlock(context.Context, *types.SignedBlock) error { return nil }

func (conflictValidator) CheckLinkage(*types.SignedBlock, *types.BlockData) error { return nil }

func (conflictValidator) AccumulateBalance(context.Context, types.AccountID, *big.Int, *types.BlockData) (*big.Int, error) {
	return new(big.Int), nil
}

func TestSubmit_LedgerConflict_Returns409(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, false)
	e := newEnv(t, store, c, func(d *apihttp.Dependencies) {
		p, err := processor.NewService(conflictValidator{}, store, c.IDs, c.Addresses, nil, nil, nil)
		require.NoError(t, err)
		d.Processor = p
	})
	genesis := c.Sign(t, e.alice, testutil.Genesis(0))
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader()).Code)

	// Act
	rec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader())

	// Assert
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	body := decodeError(t, rec)
	assert.Equal(t, "BLOCK_CONFLICT", body.Error.Code)
	assert.Equal(t, types.PreviousBlockError.String(), body.Error.Kind)
}

// ==================== 查询接口 ====================

func TestQueries_InvalidOrUnknownKeys(t *testing.T) {
	e := newBadgerEnv(t)
	aliceAddr := e.c.Addresses.Encode(e.alice.ID)
	unknownID := types.BlockID{0x01}.String()

	cases := []struct {
		path   string
		status int
	}{
		{"/v1/blocks/not-hex", http.StatusBadRequest},
		{"/v1/blocks/" + unknownID, http.StatusNotFound},
		{"/v1/transactions/abcd", http.StatusBadRequest},
		{"/v1/transactions/" + unknownID, http.StatusNotFound},
		{"/v1/accounts/not-an-address/head", http.StatusBadRequest},
		{"/v1/accounts/" + aliceAddr + "/head", http.StatusNotFound},
		{"/v1/accounts/" + aliceAddr + "/blocks/x", http.StatusBadRequest},
		{"/v1/accounts/" + aliceAddr + "/blocks/3", http.StatusNotFound},
		{"/v1/accounts/" + aliceAddr + "/delegate", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := e.do(t, http.MethodGet, tc.path, nil, nil)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestGetTransaction_Send_ReportsClaimedFlag(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t)
	bob := e.c.NewAccount(t)
	genesis := e.c.Sign(t, bob, testutil.Genesis(0))
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader()).Code)
	send := e.c.Sign(t, bob, e.c.Next(genesis, 0, testutil.Send(e.alice.ID, 0)))
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/blocks", blockBody(send), adminHeader()).Code)
	sendID := e.c.TxID(send, 0)

	// Act
	before := e.do(t, http.MethodGet, "/v1/transactions/"+sendID.String(), nil, nil)
	collect := e.c.Sign(t, e.alice, testutil.Genesis(0, testutil.Collect(sendID)))
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/blocks", blockBody(collect), adminHeader()).Code)
	after := e.do(t, http.MethodGet, "/v1/transactions/"+sendID.String(), nil, nil)

	// Assert
	var view struct {
		Transaction struct {
			ID       string `json:"id"`
			Kind     string `json:"kind"`
			Receiver string `json:"receiver"`
			BlockID  string `json:"blockId"`
			Index    int    `json:"index"`
			Account  string `json:"account"`
		} `json:"transaction"`
		Claimed bool `json:"claimed"`
	}
	require.Equal(t, http.StatusOK, before.Code, before.Body.String())
	decodeData(t, before, &view)
	assert.Equal(t, sendID.String(), view.Transaction.ID)
	assert.Equal(t, "send", view.Transaction.Kind)
	assert.Equal(t, e.c.Addresses.Encode(e.alice.ID), view.Transaction.Receiver)
	assert.Equal(t, e.c.Addresses.Encode(bob.ID), view.Transaction.Account)
	assert.Equal(t, e.c.IDs.BlockID(send.Data).String(), view.Transaction.BlockID)
	assert.False(t, view.Claimed)

	require.Equal(t, http.StatusOK, after.Code)
	decodeData(t, after, &view)
	assert.True(t, view.Claimed)
}

// ==================== 运维接口 ====================

func TestHealthz_Returns200(t *testing.T) {
	e := newBadgerEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadOnly_AdminToggle_BlocksSubmitButNotValidate(t *testing.T) {
	// Arrange
	gate := writegate.New()
	e := newBadgerEnv(t, withGate(t, gate))
	genesis := e.c.Sign(t, e.alice, testutil.Genesis(0))

	// Act
	toggle := e.do(t, http.MethodPut, "/v1/admin/read-only", map[string]interface{}{"enabled": true, "reason": "备份"}, adminHeader())
	submit := e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader())
	validate := e.do(t, http.MethodPost, "/v1/blocks/validate", blockBody(genesis), nil)
	health := e.do(t, http.MethodGet, "/healthz", nil, nil)

	// Assert
	require.Equal(t, http.StatusOK, toggle.Code, toggle.Body.String())
	assert.True(t, gate.IsReadOnly())
	assert.Equal(t, "备份", gate.Status().Reason)

	require.Equal(t, http.StatusServiceUnavailable, submit.Code, submit.Body.String())
	body := decodeError(t, submit)
	assert.Equal(t, "LEDGER_READ_ONLY", body.Error.Code)
	assert.Equal(t, "StorageUnavailable", body.Error.Kind)
	assert.False(t, body.Error.Retryable)
	assert.Empty(t, submit.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, validate.Code)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"read_only"`)

	// 恢复写入后追加成功
	back := e.do(t, http.MethodPut, "/v1/admin/read-only", map[string]interface{}{"enabled": false}, adminHeader())
	require.Equal(t, http.StatusOK, back.Code)
	rec := e.do(t, http.MethodPost, "/v1/blocks", blockBody(genesis), adminHeader())
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestReadOnly_AdminEndpoints_RequireAuthAndBody(t *testing.T) {
	e := newBadgerEnv(t, withGate(t, writegate.New()))

	noAuth := e.do(t, http.MethodGet, "/v1/admin/read-only", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, noAuth.Code)

	get := e.do(t, http.MethodGet, "/v1/admin/read-only", nil, adminHeader())
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), `"read_only":false`)

	missing := e.do(t, http.MethodPut, "/v1/admin/read-only", map[string]string{"reason": "x"}, adminHeader())
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestReadOnly_WithoutGate_AdminRoutesAbsent(t *testing.T) {
	e := newBadgerEnv(t)
	rec := e.do(t, http.MethodGet, "/v1/admin/read-only", nil, adminHeader())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_ExposesRequestCounters(t *testing.T) {
	// Arrange
	e := newBadgerEnv(t)
	e.do(t, http.MethodGet, "/healthz", nil, nil)

	// Act
	rec := e.do(t, http.MethodGet, "/metrics", nil, nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `champ_api_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestRequestID_IsEchoedOrGenerated(t *testing.T) {
	e := newBadgerEnv(t)

	rec := e.do(t, http.MethodGet, "/healthz", nil, map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	rec = e.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	rec = e.do(t, http.MethodGet, "/v1/blocks/zz", nil, map[string]string{"X-Request-ID": "req-43"})
	assert.Equal(t, "req-43", decodeError(t, rec).Error.RequestID)
}

func TestServer_StartStop_ServesOnListener(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewMockLedger()
	v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses, nil, nil, nil, nil)
	require.NoError(t, err)
	p, err := processor.NewService(v, store, c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)
	options := apiconfig.New(nil).GetOptions()
	options.Listen = "127.0.0.1:0"
	server, err := apihttp.NewServer(apihttp.Dependencies{
		Options: options, Validator: v, Processor: p, Store: store,
		IDCalculator: c.IDs, AddressManager: c.Addresses,
	})
	require.NoError(t, err)

	// Act
	require.NoError(t, server.Start())
	resp, err := http.Get("http://" + server.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	stopErr := server.Stop(context.Background())

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, stopErr)
}
