package log

// 日志默认值：控制台 + 文件，文件按 100MB 轮转
const (
	defaultLogLevel         = "info" // 区块接受与拒绝记在 info，单笔交易细节在 debug
	defaultToConsole        = true
	defaultFilePath         = "data/logs/champ.log"
	defaultMaxSize          = 100 // MB
	defaultMaxBackups       = 10
	defaultMaxAge           = 30 // 天
	defaultCompress         = true
	defaultEnableCaller     = true
	defaultEnableStacktrace = true
)
