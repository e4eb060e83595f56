package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/billy1624/champ/pkg/types"
)

// signFlags 区块构造参数
type signFlags struct {
	keyPath   string
	height    uint64
	balance   uint64
	previous  string
	version   uint32
	timestamp uint64
	sends     []string
	collects  []string
	delegate  string
}

func newSignCmd() *cobra.Command {
	f := &signFlags{}
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "构造并签名区块，输出规范编码的十六进制",
		Example: `  champ sign --key alice.json --height 0 --balance 1000
  champ sign --key alice.json --height 1 --balance 900 --previous <id> --send <address>:100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newCryptoServices()
			if err != nil {
				return err
			}
			block, err := f.build(svc)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(block.Marshal())); err != nil {
				return err
			}
			pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("区块ID %s，高度 %d，交易 %d 笔",
				svc.ids.BlockID(block.Data), block.Data.Height, len(block.Data.Transactions))
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.keyPath, "key", "k", "", "密钥文件（keygen 生成）")
	cmd.Flags().Uint64Var(&f.height, "height", 0, "区块高度")
	cmd.Flags().Uint64Var(&f.balance, "balance", 0, "应用本区块后的账户余额")
	cmd.Flags().StringVar(&f.previous, "previous", "", "上一区块ID（十六进制），创世区块留空")
	cmd.Flags().Uint32Var(&f.version, "version", 0, "区块版本")
	cmd.Flags().Uint64Var(&f.timestamp, "timestamp", 0, "时间戳（秒），默认当前时间")
	cmd.Flags().StringArrayVar(&f.sends, "send", nil, "Send 交易 <address>:<amount>，可重复")
	cmd.Flags().StringArrayVar(&f.collects, "collect", nil, "Collect 交易，值为 Send 的交易ID，可重复")
	cmd.Flags().StringVar(&f.delegate, "delegate", "", "Delegate 交易，值为代表账户地址")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// build 按 Send、Collect、Delegate 的顺序组装交易并签名
func (f *signFlags) build(svc *cryptoServices) (*types.SignedBlock, error) {
	_, sigType, priv, err := loadKeyFile(f.keyPath)
	if err != nil {
		return nil, err
	}
	pub, err := svc.SignatureManager.PublicKeyFromPrivate(sigType, priv)
	if err != nil {
		return nil, fmt.Errorf("私钥无效: %w", err)
	}

	data := &types.BlockData{
		Version:       f.version,
		SignatureType: sigType,
		Balance:       f.balance,
		Height:        f.height,
		Previous:      types.ZeroBlockID.Bytes(),
	}
	if f.previous != "" {
		prev, err := types.ParseBlockID(f.previous)
		if err != nil {
			return nil, err
		}
		data.Previous = prev.Bytes()
	}

	for _, s := range f.sends {
		addr, amountStr, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("--send 格式应为 <address>:<amount>: %s", s)
		}
		receiver, err := svc.AddressManager.Decode(addr)
		if err != nil {
			return nil, fmt.Errorf("接收方地址无效 %s: %w", addr, err)
		}
		amount, err := strconv.ParseUint(amountStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("金额无效 %s: %w", amountStr, err)
		}
		data.Transactions = append(data.Transactions, &types.Transaction{
			Data: &types.TxSend{Receiver: receiver.Bytes(), Amount: amount},
		})
	}
	for _, c := range f.collects {
		sendID, err := types.ParseTransactionID(c)
		if err != nil {
			return nil, err
		}
		data.Transactions = append(data.Transactions, &types.Transaction{
			Data: &types.TxCollect{TransactionID: sendID.Bytes()},
		})
	}
	if f.delegate != "" {
		rep, err := svc.AddressManager.Decode(f.delegate)
		if err != nil {
			return nil, fmt.Errorf("代表地址无效: %w", err)
		}
		data.Transactions = append(data.Transactions, &types.Transaction{
			Data: &types.TxDelegate{Representative: rep.Bytes()},
		})
	}

	sig, err := svc.SignatureManager.Sign(sigType, data.Marshal(), priv)
	if err != nil {
		return nil, fmt.Errorf("签名失败: %w", err)
	}

	timestamp := f.timestamp
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}
	return &types.SignedBlock{
		Signature: sig,
		PublicKey: pub,
		Timestamp: timestamp,
		Data:      data,
	}, nil
}
