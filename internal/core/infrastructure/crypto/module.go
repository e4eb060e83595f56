// Package crypto 提供加密相关功能
package crypto

import (
	"fmt"

	"github.com/billy1624/champ/internal/core/infrastructure/crypto/address"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/hash"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/password"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto/signature"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"go.uber.org/fx"
)

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	HashManager      crypto.HashManager
	AddressManager   crypto.AddressManager
	SignatureManager crypto.SignatureManager
	PasswordHasher   crypto.PasswordHasher
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices() (CryptoOutput, error) {
	hashService := hash.NewHashService()

	addressService, err := address.NewAddressService(hashService)
	if err != nil {
		return CryptoOutput{}, fmt.Errorf("创建地址服务失败: %w", err)
	}

	return CryptoOutput{
		HashManager:      hashService,
		AddressManager:   addressService,
		SignatureManager: signature.NewSignatureService(),
		PasswordHasher:   password.NewHasher(),
	}, nil
}
