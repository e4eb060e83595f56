package crypto

import "github.com/billy1624/champ/pkg/types"

// AddressManager 账户地址服务
type AddressManager interface {
	// AccountIDFromPublicKey 由公钥派生账户ID
	AccountIDFromPublicKey(publicKey []byte) (types.AccountID, error)

	// Encode 账户ID的 Base58Check 字符串形式
	Encode(id types.AccountID) string

	// Decode 解析 Base58Check 字符串
	Decode(address string) (types.AccountID, error)

	// PublicKeyToAddress 由公钥直接得到地址字符串
	PublicKeyToAddress(publicKey []byte) (string, error)
}
