package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/billy1624/champ/internal/app"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// withLocalNode 以离线模式打开本地账本（不启动 API），执行 fn 后关闭
//
// Badger 目录独占，节点运行时这些命令会因目录锁失败。
func withLocalNode(cmd *cobra.Command, flags *GlobalFlags, fn func(ctx context.Context) error, targets ...interface{}) error {
	opts, err := flags.appOptions()
	if err != nil {
		return err
	}
	opts = append(opts, app.WithoutAPI(), app.WithPopulate(targets...))

	fxApp, err := app.New(opts...)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("打开本地账本失败: %w", err)
	}
	defer func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			pterm.Warning.WithWriter(cmd.ErrOrStderr()).Printfln("关闭本地账本失败: %v", err)
		}
	}()
	return fn(ctx)
}

// readBlock 从参数、文件或标准输入读取十六进制区块；"-" 表示标准输入
func readBlock(cmd *cobra.Command, args []string, file string) (*types.SignedBlock, error) {
	var text string
	switch {
	case len(args) == 1 && args[0] != "-":
		text = args[0]
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("读取区块文件失败: %w", err)
		}
		text = string(raw)
	default:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
		text = string(raw)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("区块不是合法的十六进制: %w", err)
	}
	return types.UnmarshalSignedBlock(raw)
}

// describeFailure 验证失败的可读描述
func describeFailure(err error) string {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		if verr.TxIndex >= 0 {
			return fmt.Sprintf("%s（交易 #%d）", verr.Kind, verr.TxIndex)
		}
		return verr.Kind.String()
	}
	if kind, ok := types.NodeKindOf(err); ok {
		if types.IsRetryable(err) {
			return kind.String() + "（可重试）"
		}
		return kind.String()
	}
	return "节点错误"
}

func newValidateCmd(flags *GlobalFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate [block-hex|-]",
		Short: "针对本地账本验证区块（不写入）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args, file)
			if err != nil {
				return err
			}
			var validator blockif.BlockValidator
			var ids blockif.IDCalculator
			return withLocalNode(cmd, flags, func(ctx context.Context) error {
				if err := validator.ValidateBlock(ctx, block); err != nil {
					pterm.Error.WithWriter(cmd.ErrOrStderr()).Printfln("区块无效: %s", describeFailure(err))
					return err
				}
				pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("区块有效: %s", ids.BlockID(block.Data))
				return nil
			}, &validator, &ids)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "从文件读取区块")
	return cmd
}

func newSubmitCmd(flags *GlobalFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "submit [block-hex|-]",
		Short: "验证并追加区块到本地账本",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args, file)
			if err != nil {
				return err
			}
			var processor blockif.BlockProcessor
			return withLocalNode(cmd, flags, func(ctx context.Context) error {
				id, err := processor.ProcessBlock(ctx, block)
				if err != nil {
					pterm.Error.WithWriter(cmd.ErrOrStderr()).Printfln("追加失败: %s", describeFailure(err))
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			}, &processor)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "从文件读取区块")
	return cmd
}

func newHeadCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "head <address>",
		Short: "查询本地账本中账户的头区块",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				store     ledgerif.Store
				addresses crypto.AddressManager
				ids       blockif.IDCalculator
			)
			return withLocalNode(cmd, flags, func(ctx context.Context) error {
				account, err := addresses.Decode(args[0])
				if err != nil {
					return fmt.Errorf("账户地址无效: %w", err)
				}
				head, err := store.GetHeadBlock(ctx, account)
				if errors.Is(err, ledgerif.ErrNoLastBlock) {
					pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println("账户尚无区块")
					return err
				}
				if err != nil {
					return err
				}
				return printBlock(cmd.OutOrStdout(), ids, head)
			}, &store, &addresses, &ids)
		},
	}
}

func printBlock(w io.Writer, ids blockif.IDCalculator, block *types.SignedBlock) error {
	data := block.Data
	id := ids.BlockID(data)
	rows := pterm.TableData{
		{"字段", "值"},
		{"ID", id.String()},
		{"高度", strconv.FormatUint(data.Height, 10)},
		{"余额", strconv.FormatUint(data.Balance, 10)},
		{"Previous", hex.EncodeToString(data.Previous)},
		{"签名类型", data.SignatureType.String()},
		{"交易数", strconv.Itoa(len(data.Transactions))},
	}
	for i, tx := range data.Transactions {
		rows = append(rows, []string{fmt.Sprintf("交易 #%d", i), tx.KindName() + " " + ids.TransactionID(id, tx).String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(rows).Render()
}
