package filer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// JsonFiler ファイル入出力用のインターフェース
type JsonFiler interface {
	Save(name string, i any) error
	Load(name string, in any) error
}

type jsonFiler struct {
	indent string
}

// NewJsonFiler json形式版 indent が空なら1行で出力
func NewJsonFiler(indent string) JsonFiler {
	return &jsonFiler{indent: indent}
}

// Save データをjson形式にしてファイル出力
// 一時ファイルに書いてから rename するので、途中で失敗しても既存ファイルは壊れない
func (f jsonFiler) Save(name string, i any) error {
	b, err := f.marshal(i)
	if err != nil {
		return errors.Errorf("failed to json marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp*")
	if err != nil {
		return errors.Errorf("failed to create temp file for %q: %w", name, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Errorf("failed to write file %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("failed to close file %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return errors.Errorf("failed to rename to %q: %w", name, err)
	}
	return nil
}

// Load ファイルから読み込んだjsonを任意の構造体に変換
func (f jsonFiler) Load(name string, in any) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return errors.Errorf("failed to read file: %w", err)
	}

	if err := json.Unmarshal(b, in); err != nil {
		return errors.Errorf("failed to json unmarshal: %w", err)
	}
	return nil
}

func (f jsonFiler) marshal(i any) ([]byte, error) {
	if f.indent == "" {
		return json.Marshal(i)
	}
	return json.MarshalIndent(i, "", f.indent)
}
