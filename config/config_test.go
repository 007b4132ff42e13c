package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	SafePrimeQ int64  `mapstructure:"safe_prime_q"`
	LogLevel   string `mapstructure:"log_level"`
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644))
	return dir
}

func TestGetAppEnv(t *testing.T) {
	t.Setenv(Key, "")
	assert.Equal(t, DefaultEnv, GetAppEnv())

	t.Setenv(Key, "prd001")
	assert.Equal(t, "prd001", GetAppEnv())
}

func TestReadWithConfigDirPath(t *testing.T) {
	t.Setenv(Key, "")
	dir := writeConfig(t, DefaultEnv, "safe_prime_q: 11\nlog_level: debug\n")

	var cfg testConfig
	require.NoError(t, ReadWithConfigDirPath(&cfg, dir))

	assert.Equal(t, int64(11), cfg.SafePrimeQ)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestRead_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "dev001", "safe_prime_q: 11\nlog_level: info\n")
	t.Setenv("SAFE_PRIME_Q", "5")

	var cfg testConfig
	require.NoError(t, read(&cfg, "dev001", dir))

	assert.Equal(t, int64(5), cfg.SafePrimeQ)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestRead_Errors(t *testing.T) {
	t.Run("異常系: ファイルがない", func(t *testing.T) {
		var cfg testConfig
		assert.Error(t, read(&cfg, "none", t.TempDir()))
	})

	t.Run("異常系: 型が合わない", func(t *testing.T) {
		dir := writeConfig(t, "bad", "safe_prime_q: eleven\n")

		var cfg testConfig
		assert.Error(t, read(&cfg, "bad", dir))
	})
}

func TestGetConfigDirPath(t *testing.T) {
	// テストファイルは cmd 配下にないのでカレントディレクトリ
	assert.Equal(t, "./", getConfigDirPath(1))
}
