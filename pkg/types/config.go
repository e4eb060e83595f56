package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，字段为指针：只有配置文件中出现的字段才覆盖默认值
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	AppName *string `json:"app_name,omitempty"` // 应用名称

	Log       *UserLogConfig       `json:"log,omitempty"`       // 日志配置
	Storage   *UserStorageConfig   `json:"storage,omitempty"`   // 存储配置
	Cache     *UserCacheConfig     `json:"cache,omitempty"`     // 头区块缓存配置
	Validator *UserValidatorConfig `json:"validator,omitempty"` // 区块验证配置
	Genesis   *UserGenesisConfig   `json:"genesis,omitempty"`   // 创世配置
	API       *UserAPIConfig       `json:"api,omitempty"`       // HTTP API 配置
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level            *string `json:"level,omitempty"`
	ToConsole        *bool   `json:"to_console,omitempty"`
	FilePath         *string `json:"file_path,omitempty"`
	MaxSize          *int    `json:"max_size,omitempty"`
	MaxBackups       *int    `json:"max_backups,omitempty"`
	MaxAge           *int    `json:"max_age,omitempty"`
	Compress         *bool   `json:"compress,omitempty"`
	EnableCaller     *bool   `json:"enable_caller,omitempty"`
	EnableStacktrace *bool   `json:"enable_stacktrace,omitempty"`
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot   *string `json:"data_root,omitempty"`   // 数据根目录，badger 位于 <data_root>/badger
	InMemory   *bool   `json:"in_memory,omitempty"`   // 纯内存模式（测试、演示）
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 每次写入 fsync
}

// UserCacheConfig 用户头区块缓存配置
type UserCacheConfig struct {
	Enabled            *bool   `json:"enabled,omitempty"`
	LifeWindow         *string `json:"life_window,omitempty"`  // 例如 "10m"
	CleanWindow        *string `json:"clean_window,omitempty"` // 例如 "5m"
	MaxEntriesInWindow *int    `json:"max_entries_in_window,omitempty"`
	MaxEntrySize       *int    `json:"max_entry_size,omitempty"`
	HardMaxCacheSize   *int    `json:"hard_max_cache_size,omitempty"` // MB
}

// UserValidatorConfig 用户区块验证配置
type UserValidatorConfig struct {
	StorageTimeout       *string `json:"storage_timeout,omitempty"` // 例如 "5s"
	MaxTransactions      *int    `json:"max_transactions,omitempty"`
	MaxConcurrentLookups *int    `json:"max_concurrent_lookups,omitempty"`
}

// UserGenesisConfig 用户创世配置
type UserGenesisConfig struct {
	InitialBalance *uint64           `json:"initial_balance,omitempty"` // 未列入 allotments 的账户初始余额
	Allotments     map[string]uint64 `json:"allotments,omitempty"`      // Base58 账户 -> 创世余额
}

// UserAPIConfig 用户 HTTP API 配置
type UserAPIConfig struct {
	Enabled           *bool   `json:"enabled,omitempty"`
	Listen            *string `json:"listen,omitempty"`
	AdminPasswordHash *string `json:"admin_password_hash,omitempty"` // argon2id PHC 字符串
}
