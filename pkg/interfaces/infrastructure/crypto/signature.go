package crypto

import "github.com/billy1624/champ/pkg/types"

// SignatureManager 区块签名服务，按签名类型分派算法
type SignatureManager interface {
	// Verify 验证签名，失败返回错误（不区分具体原因）
	Verify(sigType types.SignatureType, message, publicKey, signature []byte) error

	// Sign 使用私钥签名
	Sign(sigType types.SignatureType, message, privateKey []byte) ([]byte, error)

	// GenerateKey 生成新的密钥对
	GenerateKey(sigType types.SignatureType) (privateKey, publicKey []byte, err error)

	// PublicKeyFromPrivate 由私钥推导公钥
	PublicKeyFromPrivate(sigType types.SignatureType, privateKey []byte) ([]byte, error)
}
