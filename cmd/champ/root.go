package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billy1624/champ/configs"
	"github.com/billy1624/champ/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件路径
	Env        string // 嵌入配置环境名
}

// newRootCmd 根命令
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "champ",
		Short: "账户链区块验证节点",
		Long: `champ - 账户链区块验证节点

每个账户维护一条只追加的区块链。节点验证候选区块
（高度、previous、签名、交易去重、Collect 领取、余额）并追加到本地账本。

  champ start                    启动节点与 HTTP API
  champ keygen                   生成密钥对
  champ sign                     构造并签名区块
  champ validate / submit        针对本地账本验证或追加区块
  champ head <address>           查询账户头区块
  champ passwd                   生成管理口令哈希
  champ version                  显示版本信息`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "配置文件路径（默认读取 "+app.ConfigPathEnv+" 或嵌入配置）")
	root.PersistentFlags().StringVar(&flags.Env, "env", "default", "未指定配置文件时使用的嵌入配置: default|production")

	root.AddCommand(
		newStartCmd(flags),
		newValidateCmd(flags),
		newSubmitCmd(flags),
		newHeadCmd(flags),
		newKeygenCmd(),
		newSignCmd(),
		newPasswdCmd(),
		newVersionCmd(),
	)
	return root
}

// appOptions 根据全局标志选择配置来源
func (f *GlobalFlags) appOptions() ([]app.Option, error) {
	if f.ConfigFile != "" {
		return []app.Option{app.WithConfigFile(f.ConfigFile)}, nil
	}
	raw := configs.Get(f.Env)
	if raw == nil {
		return nil, fmt.Errorf("未知的嵌入配置环境: %s", f.Env)
	}
	return []app.Option{app.WithEmbeddedConfig(raw)}, nil
}
