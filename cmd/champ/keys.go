package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	blockhash "github.com/billy1624/champ/internal/core/block/hash"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/types"
)

// keyFile 密钥文件格式
type keyFile struct {
	SignatureType string `json:"signature_type"`
	PrivateKey    string `json:"private_key"`
	PublicKey     string `json:"public_key"`
	Address       string `json:"address"`
}

// cryptoServices 离线命令使用的密码学服务
type cryptoServices struct {
	crypto.CryptoOutput
	ids *blockhash.BlockHashService
}

func newCryptoServices() (*cryptoServices, error) {
	out, err := crypto.ProvideCryptoServices()
	if err != nil {
		return nil, err
	}
	ids, err := blockhash.NewBlockHashService(out.HashManager)
	if err != nil {
		return nil, err
	}
	return &cryptoServices{CryptoOutput: out, ids: ids}, nil
}

func parseSignatureType(s string) (types.SignatureType, error) {
	switch s {
	case "", "ed25519":
		return types.SignatureEd25519, nil
	case "secp256k1":
		return types.SignatureSecp256k1, nil
	}
	return 0, fmt.Errorf("不支持的签名类型: %s", s)
}

func loadKeyFile(path string) (*keyFile, types.SignatureType, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("读取密钥文件失败: %w", err)
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, 0, nil, fmt.Errorf("解析密钥文件失败: %w", err)
	}
	sigType, err := parseSignatureType(kf.SignatureType)
	if err != nil {
		return nil, 0, nil, err
	}
	priv, err := hex.DecodeString(kf.PrivateKey)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("私钥不是合法的十六进制: %w", err)
	}
	return &kf, sigType, priv, nil
}

func newKeygenCmd() *cobra.Command {
	var (
		sigTypeName string
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "生成账户密钥对",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigType, err := parseSignatureType(sigTypeName)
			if err != nil {
				return err
			}
			svc, err := newCryptoServices()
			if err != nil {
				return err
			}
			priv, pub, err := svc.SignatureManager.GenerateKey(sigType)
			if err != nil {
				return fmt.Errorf("生成密钥失败: %w", err)
			}
			addr, err := svc.AddressManager.PublicKeyToAddress(pub)
			if err != nil {
				return err
			}

			raw, err := json.MarshalIndent(keyFile{
				SignatureType: sigType.String(),
				PrivateKey:    hex.EncodeToString(priv),
				PublicKey:     hex.EncodeToString(pub),
				Address:       addr,
			}, "", "  ")
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			if err := os.WriteFile(outPath, append(raw, '\n'), 0o600); err != nil {
				return fmt.Errorf("写入密钥文件失败: %w", err)
			}
			pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("已生成 %s 账户 %s -> %s", sigType, addr, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sigTypeName, "type", "t", "ed25519", "签名类型: ed25519|secp256k1")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "写入密钥文件（权限 0600），默认输出到标准输出")
	return cmd
}
