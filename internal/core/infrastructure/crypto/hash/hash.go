// Package hash 提供哈希计算服务
package hash

import (
	"crypto/sha256"

	cryptointf "github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // 账户ID格式固定使用 RIPEMD-160
	"golang.org/x/crypto/sha3"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// HashService 提供哈希计算功能，无状态，可并发使用
type HashService struct{}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	return &HashService{}
}

// SHA3_256 计算 SHA3-256
func (s *HashService) SHA3_256(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

// SHA256 计算 SHA-256
func (s *HashService) SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// RIPEMD160 计算 RIPEMD-160
func (s *HashService) RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 计算 RIPEMD160(SHA256(data))
func (s *HashService) Hash160(data []byte) []byte {
	return s.RIPEMD160(s.SHA256(data))
}
