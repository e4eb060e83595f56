package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/billy1624/champ/internal/core/infrastructure/crypto/password"
)

func newPasswdCmd() *cobra.Command {
	var plain string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "生成管理口令的 argon2id 哈希，填入 api.admin_password_hash",
		Long: `生成管理口令的 argon2id 哈希。

口令来源依次为 --password、终端无回显输入、标准输入的第一行。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain == "" {
				input, err := readPassword(cmd)
				if err != nil {
					return err
				}
				plain = input
			}
			if plain == "" {
				return fmt.Errorf("口令不能为空")
			}

			hash, err := password.NewHasher().Hash(plain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().StringVar(&plain, "password", "", "口令（缺省时从终端或标准输入读取）")
	return cmd
}

// readPassword 终端下无回显读取，否则读标准输入第一行
func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pterm.Info.WithWriter(cmd.ErrOrStderr()).Print("管理口令: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("读取口令失败: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("读取口令失败: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
