// Package api 组装对外接口
package api

import (
	"go.uber.org/fx"

	"github.com/billy1624/champ/internal/api/http"
)

// Module 返回API模块选项
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),

		// 显式依赖 *http.Server，确保其生命周期钩子被注册
		fx.Invoke(func(*http.Server) {}),
	)
}
