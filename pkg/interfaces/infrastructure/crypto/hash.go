// Package crypto 定义节点使用的密码学服务接口
package crypto

// HashManager 哈希服务
type HashManager interface {
	// SHA3_256 计算 SHA3-256，区块ID与交易ID使用
	SHA3_256(data []byte) []byte

	// SHA256 计算 SHA-256
	SHA256(data []byte) []byte

	// RIPEMD160 计算 RIPEMD-160
	RIPEMD160(data []byte) []byte

	// Hash160 计算 RIPEMD160(SHA256(data))，账户ID使用
	Hash160(data []byte) []byte
}
