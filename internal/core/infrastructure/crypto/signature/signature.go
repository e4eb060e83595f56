// Package signature 提供区块签名的生成与验证
//
// 按 SignatureType 分派：
//   - Ed25519：标准 Ed25519，对消息原文签名
//   - Secp256k1：ECDSA over SHA-256(消息)，DER 编码，压缩或非压缩公钥均可
package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	cryptointf "github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/types"
)

// 确保SignatureService实现了cryptointf.SignatureManager接口
var _ cryptointf.SignatureManager = (*SignatureService)(nil)

// 错误定义
var (
	ErrInvalidSignature     = errors.New("无效的签名")
	ErrInvalidKeyLength     = errors.New("无效的密钥长度")
	ErrInvalidPublicKey     = errors.New("无效的公钥")
	ErrUnsupportedAlgorithm = errors.New("不支持的签名类型")
)

// secp256k1 私钥长度
const secp256k1PrivateKeyLength = 32

// SignatureService 签名服务，无状态
type SignatureService struct{}

// NewSignatureService 创建新的签名服务
func NewSignatureService() *SignatureService {
	return &SignatureService{}
}

// Verify 验证签名，任何失败都返回 ErrInvalidSignature 包装的错误
func (ss *SignatureService) Verify(sigType types.SignatureType, message, publicKey, signature []byte) error {
	switch sigType {
	case types.SignatureEd25519:
		if len(publicKey) != ed25519.PublicKeySize {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, ErrInvalidPublicKey)
		}
		if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
			return ErrInvalidSignature
		}
		return nil

	case types.SignatureSecp256k1:
		pub, err := btcec.ParsePubKey(publicKey)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, ErrInvalidPublicKey)
		}
		sig, err := btcec_ecdsa.ParseDERSignature(signature)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		digest := sha256.Sum256(message)
		if !sig.Verify(digest[:], pub) {
			return ErrInvalidSignature
		}
		return nil

	default:
		return fmt.Errorf("%w: %w (%d)", ErrInvalidSignature, ErrUnsupportedAlgorithm, sigType)
	}
}

// Sign 使用私钥签名
func (ss *SignatureService) Sign(sigType types.SignatureType, message, privateKey []byte) ([]byte, error) {
	switch sigType {
	case types.SignatureEd25519:
		priv, err := ed25519PrivateKey(privateKey)
		if err != nil {
			return nil, err
		}
		return ed25519.Sign(priv, message), nil

	case types.SignatureSecp256k1:
		if len(privateKey) != secp256k1PrivateKeyLength {
			return nil, ErrInvalidKeyLength
		}
		priv, _ := btcec.PrivKeyFromBytes(privateKey)
		digest := sha256.Sum256(message)
		return btcec_ecdsa.Sign(priv, digest[:]).Serialize(), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, sigType)
	}
}

// GenerateKey 生成新的密钥对
//
// Ed25519 私钥返回 32 字节种子；secp256k1 公钥为 33 字节压缩格式。
func (ss *SignatureService) GenerateKey(sigType types.SignatureType) ([]byte, []byte, error) {
	switch sigType {
	case types.SignatureEd25519:
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, fmt.Errorf("生成Ed25519密钥失败: %w", err)
		}
		return priv.Seed(), []byte(pub), nil

	case types.SignatureSecp256k1:
		priv, err := btcec.NewPrivateKey()
		if err != nil {
			return nil, nil, fmt.Errorf("生成secp256k1密钥失败: %w", err)
		}
		return priv.Serialize(), priv.PubKey().SerializeCompressed(), nil

	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, sigType)
	}
}

// PublicKeyFromPrivate 由私钥推导公钥
func (ss *SignatureService) PublicKeyFromPrivate(sigType types.SignatureType, privateKey []byte) ([]byte, error) {
	switch sigType {
	case types.SignatureEd25519:
		priv, err := ed25519PrivateKey(privateKey)
		if err != nil {
			return nil, err
		}
		return []byte(priv.Public().(ed25519.PublicKey)), nil

	case types.SignatureSecp256k1:
		if len(privateKey) != secp256k1PrivateKeyLength {
			return nil, ErrInvalidKeyLength
		}
		_, pub := btcec.PrivKeyFromBytes(privateKey)
		return pub.SerializeCompressed(), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, sigType)
	}
}

// ed25519PrivateKey 接受 32 字节种子或 64 字节完整私钥
func ed25519PrivateKey(raw []byte) (ed25519.PrivateKey, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, ErrInvalidKeyLength
	}
}
