// Package version 构建版本信息，通过 -ldflags "-X" 注入
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "v0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown" // RFC3339
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion 获取版本号
func GetVersion() string {
	return Version
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersion 多行版本描述，未注入的字段省略
func GetFullVersion() string {
	info := GetBuildInfo()
	var b strings.Builder
	fmt.Fprintf(&b, "champ %s", info.Version)
	if info.Commit != "unknown" {
		fmt.Fprintf(&b, "\n提交: %s", info.Commit)
	}
	if info.BuildTime != "unknown" {
		fmt.Fprintf(&b, "\n构建时间: %s", info.BuildTime)
	}
	fmt.Fprintf(&b, "\nGo版本: %s\n平台: %s", info.GoVersion, info.Platform)
	return b.String()
}
