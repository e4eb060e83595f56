// Package address 提供账户地址派生与编码
//
// 账户ID = RIPEMD160(SHA256(公钥))，字符串形式为带版本字节的 Base58Check。
package address

import (
	"errors"
	"fmt"

	cryptointf "github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/types"
	"github.com/btcsuite/btcutil/base58"
)

// AccountVersion Base58Check 版本字节
const AccountVersion byte = 0x1C

var (
	// ErrInvalidPublicKey 无效的公钥
	ErrInvalidPublicKey = errors.New("invalid public key format")
	// ErrInvalidAddress 无效的地址格式
	ErrInvalidAddress = errors.New("invalid address format")
	// ErrInvalidVersion 版本字节不匹配
	ErrInvalidVersion = errors.New("invalid address version")
)

// AddressService 账户地址服务
type AddressService struct {
	hashManager cryptointf.HashManager
}

var _ cryptointf.AddressManager = (*AddressService)(nil)

// NewAddressService 创建地址服务
func NewAddressService(hashManager cryptointf.HashManager) (*AddressService, error) {
	if hashManager == nil {
		return nil, fmt.Errorf("hashManager 不能为空")
	}
	return &AddressService{hashManager: hashManager}, nil
}

// AccountIDFromPublicKey 由公钥派生账户ID，空公钥视为无效
func (s *AddressService) AccountIDFromPublicKey(publicKey []byte) (types.AccountID, error) {
	if len(publicKey) == 0 {
		return types.AccountID{}, ErrInvalidPublicKey
	}
	return types.AccountIDFromBytes(s.hashManager.Hash160(publicKey))
}

// Encode 账户ID的 Base58Check 字符串
func (s *AddressService) Encode(id types.AccountID) string {
	return base58.CheckEncode(id[:], AccountVersion)
}

// Decode 解析 Base58Check 字符串
func (s *AddressService) Decode(address string) (types.AccountID, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return types.AccountID{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if version != AccountVersion {
		return types.AccountID{}, fmt.Errorf("%w: 0x%02x", ErrInvalidVersion, version)
	}
	id, err := types.AccountIDFromBytes(payload)
	if err != nil {
		return types.AccountID{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return id, nil
}

// PublicKeyToAddress 由公钥直接得到地址字符串
func (s *AddressService) PublicKeyToAddress(publicKey []byte) (string, error) {
	id, err := s.AccountIDFromPublicKey(publicKey)
	if err != nil {
		return "", err
	}
	return s.Encode(id), nil
}
