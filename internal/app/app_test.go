package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/billy1624/champ/internal/core/block/testutil"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// testConfig 纯内存存储、不写日志文件、API 监听随机端口
func testConfig() *types.AppConfig {
	return &types.AppConfig{
		Log:     &types.UserLogConfig{FilePath: ptr(""), ToConsole: ptr(false)},
		Storage: &types.UserStorageConfig{InMemory: ptr(true)},
		API:     &types.UserAPIConfig{Listen: ptr("127.0.0.1:0")},
	}
}

func TestBootstrap_DependencyGraph_IsValid(t *testing.T) {
	for name, opts := range map[string][]Option{
		"完整节点": nil,
		"离线工具": {WithoutAPI()},
	} {
		t.Run(name, func(t *testing.T) {
			o := newOptions(append(opts, WithAppConfig(testConfig()))...)
			assert.NoError(t, fx.ValidateApp(NewBootstrap(o).Options()...))
		})
	}
}

func TestNew_InMemoryNode_ProcessesBlocks(t *testing.T) {
	// Arrange
	var (
		processor blockif.BlockProcessor
		store     ledgerif.Store
	)
	fxApp, err := New(WithAppConfig(testConfig()), WithPopulate(&processor, &store))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, fxApp.Start(ctx))
	t.Cleanup(func() { _ = fxApp.Stop(ctx) })

	c := testutil.NewCrypto(t)
	alice := c.NewAccount(t)
	genesis := c.Sign(t, alice, testutil.Genesis(0))

	// Act
	id, err := processor.ProcessBlock(ctx, genesis)

	// Assert
	require.NoError(t, err)
	head, err := store.GetHeadBlock(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, id, c.IDs.BlockID(head.Data))
}

func TestResolveAppConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app_name":"from-file"}`), 0o600))

	cfg, err := resolveAppConfig(newOptions(WithConfigFile(path)))
	require.NoError(t, err)
	assert.Equal(t, "from-file", *cfg.AppName)

	cfg, err = resolveAppConfig(newOptions(WithConfigFile(path), WithEmbeddedConfig([]byte(`{"app_name":"embedded"}`))))
	require.NoError(t, err)
	assert.Equal(t, "embedded", *cfg.AppName)

	explicit := &types.AppConfig{AppName: ptr("explicit")}
	cfg, err = resolveAppConfig(newOptions(WithConfigFile(path), WithAppConfig(explicit)))
	require.NoError(t, err)
	assert.Same(t, explicit, cfg)

	t.Setenv(ConfigPathEnv, path)
	cfg, err = resolveAppConfig(newOptions())
	require.NoError(t, err)
	assert.Equal(t, "from-file", *cfg.AppName)
}

func TestResolveAppConfig_UnknownField_ReturnsError(t *testing.T) {
	_, err := resolveAppConfig(newOptions(WithEmbeddedConfig([]byte(`{"apps_name":"typo"}`))))
	assert.Error(t, err)
}

func TestCreateDataDirectories_CreatesStorageAndLogDirs(t *testing.T) {
	root := t.TempDir()
	cfg := &types.AppConfig{
		Storage: &types.UserStorageConfig{DataRoot: ptr(filepath.Join(root, "data"))},
		Log:     &types.UserLogConfig{FilePath: ptr(filepath.Join(root, "logs", "champ.log"))},
	}

	require.NoError(t, createDataDirectories(cfg))

	assert.DirExists(t, filepath.Join(root, "data"))
	assert.DirExists(t, filepath.Join(root, "logs"))
}
