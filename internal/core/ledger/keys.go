package ledger

import (
	"encoding/binary"
	"encoding/hex"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/billy1624/champ/pkg/types"
)

// 键空间
//
// BlockID 与 TransactionID 不含账户，内容相同的区块可出现在多条账户链上，
// 因此区块与交易记录都以账户限定，全局查询经 i/ 与 t/ 前缀扫描。
//
//	h/<acct>                 → 头区块ID
//	b/<acct><block id>       → snappy(SignedBlock 规范编码)
//	i/<block id><acct>       → 空值（区块ID反向索引）
//	n/<acct><height BE>      → 区块ID
//	t/<tx id><acct>          → 交易记录
//	c/<send tx id>           → 领取该 Send 的区块ID
//	d/<acct>                 → 代表
//	r/<len><rep><acct>       → 空值（代表反向索引）
var (
	prefixHead       = []byte("h/")
	prefixBlock      = []byte("b/")
	prefixBlockIndex = []byte("i/")
	prefixHeight     = []byte("n/")
	prefixTx         = []byte("t/")
	prefixClaim      = []byte("c/")
	prefixDelegate   = []byte("d/")
	prefixDelegees   = []byte("r/")
)

func join(prefix []byte, parts ...[]byte) []byte {
	n := len(prefix)
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	out = append(out, prefix...)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func headKey(account types.AccountID) []byte {
	return join(prefixHead, account[:])
}

func blockKey(account types.AccountID, id types.BlockID) []byte {
	return join(prefixBlock, account[:], id[:])
}

func blockIndexPrefix(id types.BlockID) []byte {
	return join(prefixBlockIndex, id[:])
}

func blockIndexKey(id types.BlockID, account types.AccountID) []byte {
	return join(prefixBlockIndex, id[:], account[:])
}

func heightKey(account types.AccountID, height uint64) []byte {
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], height)
	return join(prefixHeight, account[:], h[:])
}

func txPrefix(id types.TransactionID) []byte {
	return join(prefixTx, id[:])
}

func txKey(id types.TransactionID, account types.AccountID) []byte {
	return join(prefixTx, id[:], account[:])
}

func claimKey(sendID []byte) []byte {
	return join(prefixClaim, sendID)
}

func delegateKey(account types.AccountID) []byte {
	return join(prefixDelegate, account[:])
}

// delegeePrefix 代表字节长度不定，用 uvarint 长度前缀避免前缀重叠
func delegeePrefix(representative []byte) []byte {
	return join(prefixDelegees, protowire.AppendVarint(nil, uint64(len(representative))), representative)
}

func delegeeKey(representative []byte, account types.AccountID) []byte {
	return join(delegeePrefix(representative), account[:])
}

func headCacheKey(account types.AccountID) string {
	return "head:" + hex.EncodeToString(account[:])
}
