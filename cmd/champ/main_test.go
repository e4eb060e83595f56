package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billy1624/champ/internal/core/infrastructure/crypto/password"
	"github.com/billy1624/champ/pkg/types"
)

// execute 运行根命令，返回标准输出
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

// writeConfig 纯内存账本、关闭 API 的临时配置
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
  "log": {"level": "error", "to_console": false, "file_path": ""},
  "storage": {"in_memory": true},
  "genesis": {"initial_balance": 1000},
  "api": {"enabled": false}
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	return path
}

func keygen(t *testing.T, sigType string) string {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "key.json")
	_, err := execute(t, "", "keygen", "--type", sigType, "--out", keyPath)
	require.NoError(t, err)
	return keyPath
}

func TestKeygenAndSign_RoundTrip_ProducesVerifiableBlock(t *testing.T) {
	for _, sigType := range []string{"ed25519", "secp256k1"} {
		t.Run(sigType, func(t *testing.T) {
			// Arrange
			keyPath := keygen(t, sigType)
			raw, err := os.ReadFile(keyPath)
			require.NoError(t, err)
			var kf keyFile
			require.NoError(t, json.Unmarshal(raw, &kf))

			// Act
			out, err := execute(t, "", "sign", "--key", keyPath, "--height", "0", "--balance", "1000")

			// Assert
			require.NoError(t, err)
			encoded, err := hex.DecodeString(strings.TrimSpace(out))
			require.NoError(t, err)
			block, err := types.UnmarshalSignedBlock(encoded)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), block.Data.Height)
			assert.Equal(t, uint64(1000), block.Data.Balance)
			assert.Equal(t, kf.PublicKey, hex.EncodeToString(block.PublicKey))

			svc, err := newCryptoServices()
			require.NoError(t, err)
			assert.NoError(t, svc.SignatureManager.Verify(block.Data.SignatureType, block.Data.Marshal(), block.PublicKey, block.Signature))
			account, err := svc.AddressManager.AccountIDFromPublicKey(block.PublicKey)
			require.NoError(t, err)
			assert.Equal(t, kf.Address, svc.AddressManager.Encode(account))
		})
	}
}

func TestSign_WithTransactions_KeepsOrder(t *testing.T) {
	// Arrange
	keyPath := keygen(t, "ed25519")
	receiver := keygen(t, "ed25519")
	raw, err := os.ReadFile(receiver)
	require.NoError(t, err)
	var kf keyFile
	require.NoError(t, json.Unmarshal(raw, &kf))
	collectID := strings.Repeat("ab", 32)

	// Act
	out, err := execute(t, "", "sign", "--key", keyPath, "--height", "1", "--balance", "900",
		"--previous", strings.Repeat("01", 32),
		"--send", kf.Address+":100", "--collect", collectID, "--delegate", kf.Address)

	// Assert
	require.NoError(t, err)
	encoded, err := hex.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)
	block, err := types.UnmarshalSignedBlock(encoded)
	require.NoError(t, err)
	require.Len(t, block.Data.Transactions, 3)
	assert.Equal(t, "send", block.Data.Transactions[0].KindName())
	assert.Equal(t, "collect", block.Data.Transactions[1].KindName())
	assert.Equal(t, "delegate", block.Data.Transactions[2].KindName())
	send, _ := block.Data.Transactions[0].Send()
	assert.Equal(t, uint64(100), send.Amount)
}

func TestSign_MalformedSend_ReturnsError(t *testing.T) {
	keyPath := keygen(t, "ed25519")
	_, err := execute(t, "", "sign", "--key", keyPath, "--send", "not-an-address")
	assert.Error(t, err)
}

func TestPasswd_FlagValue_ProducesVerifiableHash(t *testing.T) {
	// Act
	out, err := execute(t, "", "passwd", "--password", "s3cret")

	// Assert
	require.NoError(t, err)
	ok, err := password.NewHasher().Verify("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswd_Stdin_ProducesVerifiableHash(t *testing.T) {
	out, err := execute(t, "piped-secret\n", "passwd")

	require.NoError(t, err)
	ok, err := password.NewHasher().Verify("piped-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswd_EmptyStdin_ReturnsError(t *testing.T) {
	_, err := execute(t, "", "passwd")
	assert.Error(t, err)
}

func TestValidate_GenesisAgainstEmptyLedger_Succeeds(t *testing.T) {
	// Arrange
	configPath := writeConfig(t)
	keyPath := keygen(t, "ed25519")
	blockHex, err := execute(t, "", "sign", "--key", keyPath, "--height", "0", "--balance", "1000")
	require.NoError(t, err)

	// Act
	_, err = execute(t, "", "--config", configPath, "validate", strings.TrimSpace(blockHex))

	// Assert
	assert.NoError(t, err)
}

func TestValidate_WrongGenesisBalance_ReturnsTxValidationError(t *testing.T) {
	// Arrange
	configPath := writeConfig(t)
	keyPath := keygen(t, "ed25519")
	blockHex, err := execute(t, "", "sign", "--key", keyPath, "--height", "0", "--balance", "999")
	require.NoError(t, err)

	// Act
	_, err = execute(t, blockHex, "--config", configPath, "validate", "-")

	// Assert
	require.Error(t, err)
	kind, ok := types.ValidationKindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.TxValidationError, kind)
}

func TestSubmit_Genesis_PrintsBlockID(t *testing.T) {
	// Arrange
	configPath := writeConfig(t)
	keyPath := keygen(t, "ed25519")
	blockHex, err := execute(t, "", "sign", "--key", keyPath, "--height", "0", "--balance", "1000")
	require.NoError(t, err)
	blockFile := filepath.Join(t.TempDir(), "block.hex")
	require.NoError(t, os.WriteFile(blockFile, []byte(blockHex), 0o600))

	// Act
	out, err := execute(t, "", "--config", configPath, "submit", "--file", blockFile)

	// Assert
	require.NoError(t, err)
	_, err = types.ParseBlockID(strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestReadBlock_InvalidHex_ReturnsError(t *testing.T) {
	configPath := writeConfig(t)
	_, err := execute(t, "", "--config", configPath, "validate", "zz")
	assert.Error(t, err)
}

func TestRoot_UnknownEmbeddedEnv_ReturnsError(t *testing.T) {
	_, err := execute(t, "", "--env", "staging", "head", "x")
	assert.Error(t, err)
}

func TestVersion_JSON_ReportsBuildInfo(t *testing.T) {
	out, err := execute(t, "", "version", "--json")

	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["platform"])
}
