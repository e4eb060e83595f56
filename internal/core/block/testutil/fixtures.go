package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/billy1624/champ/internal/core/block/hash"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/address"
	cryptohash "github.com/billy1624/champ/internal/core/infrastructure/crypto/hash"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/signature"
	"github.com/billy1624/champ/pkg/types"
)

// ==================== 测试密码学服务 ====================

// Crypto 测试用的真实密码学服务集合
type Crypto struct {
	Hash      *cryptohash.HashService
	Addresses *address.AddressService
	Signer    *signature.SignatureService
	IDs       *hash.BlockHashService
}

// NewCrypto 创建测试密码学服务
func NewCrypto(t testing.TB) *Crypto {
	t.Helper()
	h := cryptohash.NewHashService()
	addrs, err := address.NewAddressService(h)
	require.NoError(t, err)
	ids, err := hash.NewBlockHashService(h)
	require.NoError(t, err)
	return &Crypto{
		Hash:      h,
		Addresses: addrs,
		Signer:    signature.NewSignatureService(),
		IDs:       ids,
	}
}

// ==================== 测试账户 ====================

// Account 测试账户
type Account struct {
	SigType    types.SignatureType
	PrivateKey []byte
	PublicKey  []byte
	ID         types.AccountID
}

// NewAccount 生成 Ed25519 测试账户
func (c *Crypto) NewAccount(t testing.TB) *Account {
	return c.NewAccountWithType(t, types.SignatureEd25519)
}

// NewAccountWithType 生成指定签名类型的测试账户
func (c *Crypto) NewAccountWithType(t testing.TB, sigType types.SignatureType) *Account {
	t.Helper()
	priv, pub, err := c.Signer.GenerateKey(sigType)
	require.NoError(t, err)
	id, err := c.Addresses.AccountIDFromPublicKey(pub)
	require.NoError(t, err)
	return &Account{SigType: sigType, PrivateKey: priv, PublicKey: pub, ID: id}
}

// Sign 对区块数据签名，签名类型取账户的类型
func (c *Crypto) Sign(t testing.TB, acct *Account, data *types.BlockData) *types.SignedBlock {
	t.Helper()
	data.SignatureType = acct.SigType
	sig, err := c.Signer.Sign(acct.SigType, data.Marshal(), acct.PrivateKey)
	require.NoError(t, err)
	return &types.SignedBlock{
		Signature: sig,
		PublicKey: acct.PublicKey,
		Data:      data,
	}
}

// ==================== 区块与交易构造 ====================

// Send 构造 Send 交易
func Send(receiver types.AccountID, amount uint64) *types.Transaction {
	return &types.Transaction{Data: &types.TxSend{Receiver: receiver.Bytes(), Amount: amount}}
}

// Collect 构造 Collect 交易
func Collect(sendID types.TransactionID) *types.Transaction {
	return &types.Transaction{Data: &types.TxCollect{TransactionID: sendID.Bytes()}}
}

// Delegate 构造 Delegate 交易
func Delegate(representative []byte) *types.Transaction {
	return &types.Transaction{Data: &types.TxDelegate{Representative: representative}}
}

// Genesis 构造创世区块数据
func Genesis(balance uint64, txs ...*types.Transaction) *types.BlockData {
	return &types.BlockData{
		Balance:      balance,
		Height:       0,
		Previous:     types.ZeroBlockID.Bytes(),
		Transactions: txs,
	}
}

// Next 构造接续 prev 的区块数据
func (c *Crypto) Next(prev *types.SignedBlock, balance uint64, txs ...*types.Transaction) *types.BlockData {
	prevID := c.IDs.BlockID(prev.Data)
	return &types.BlockData{
		Balance:      balance,
		Height:       prev.Data.Height + 1,
		Previous:     prevID.Bytes(),
		Transactions: txs,
	}
}

// TxID 区块内第 index 笔交易的ID
func (c *Crypto) TxID(block *types.SignedBlock, index int) types.TransactionID {
	return c.IDs.TransactionID(c.IDs.BlockID(block.Data), block.Data.Transactions[index])
}
