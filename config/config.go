package env

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	cmdDir    = "cmd"
	configDir = "configs"
)

// Read は環境変数とYAMLファイルから新規のコンフィグを取得
// 設定ディレクトリは呼び出し元の cmd/<name> から configs/<name> を求める
func Read(config any) {
	if err := read(config, GetAppEnv(), getConfigDirPath(2)); err != nil {
		logrus.Fatalf("get config error: %s", err)
	}
}

// ReadWithConfigDirPath は環境変数と指定の設定ディレクトリ名とYAMLファイルから新規のコンフィグを取得
func ReadWithConfigDirPath(config any, cfgDirPath string) error {
	return read(config, GetAppEnv(), cfgDirPath)
}

// read はconfigの読み込みを実施
// cfgName は APP_ENV (例: tst001)、cfgDirPath は configs/dhdemo のようなディレクトリ
// ファイルの値は同名の環境変数 (SAFE_PRIME_Q など) で上書きできる
func read(cfg any, cfgName string, cfgDirPath string) error {
	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigName(cfgName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfgDirPath)

	if err := v.ReadInConfig(); err != nil {
		return errors.Errorf("read cfg error: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return errors.Errorf("parse cfg error: %w", err)
	}
	return nil
}

// getConfigDirPath configディレクトリの取得(readでのみ使用)
// 呼び出し元が cmd/dhdemo/main.go なら configs/dhdemo を返す。cmd 配下でなければ "./"
func getConfigDirPath(skip int) string {
	// クロスプラットフォーム対策
	_, file, _, _ := runtime.Caller(skip)
	dirList := strings.Split(filepath.ToSlash(filepath.Dir(file)), "/")
	dirPath := "./"

	for i, dir := range dirList {
		if dir == cmdDir {
			dirPath = filepath.Join(configDir, filepath.Join(dirList[i+1:]...))
			break
		}
	}
	return dirPath
}
