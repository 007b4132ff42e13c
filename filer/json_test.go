package filer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Id    string   `json:"id"`
	Names []string `json:"names"`
}

func TestJsonFiler_SaveLoad(t *testing.T) {
	tests := []struct {
		name   string
		indent string
		data   record
	}{
		{name: "正常系: 1行", indent: "", data: record{Id: "1", Names: []string{"alice", "bob"}}},
		{name: "正常系: インデント", indent: "  ", data: record{Id: "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewJsonFiler(tt.indent)
			path := filepath.Join(t.TempDir(), "record.json")

			require.NoError(t, f.Save(path, tt.data))

			var got record
			require.NoError(t, f.Load(path, &got))
			assert.Equal(t, tt.data, got)

			// 一時ファイルが残っていない
			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestJsonFiler_Save_Overwrite(t *testing.T) {
	f := NewJsonFiler("")
	path := filepath.Join(t.TempDir(), "record.json")

	require.NoError(t, f.Save(path, record{Id: "old"}))
	require.NoError(t, f.Save(path, record{Id: "new"}))

	var got record
	require.NoError(t, f.Load(path, &got))
	assert.Equal(t, "new", got.Id)
}

func TestJsonFiler_Errors(t *testing.T) {
	f := NewJsonFiler("")
	dir := t.TempDir()

	t.Run("異常系: 親ディレクトリがない", func(t *testing.T) {
		assert.Error(t, f.Save(filepath.Join(dir, "missing", "x.json"), record{}))
	})

	t.Run("異常系: JSONに変換できない値", func(t *testing.T) {
		assert.Error(t, f.Save(filepath.Join(dir, "func.json"), func() {}))
	})

	t.Run("異常系: ファイルがない", func(t *testing.T) {
		var got record
		assert.Error(t, f.Load(filepath.Join(dir, "none.json"), &got))
	})

	t.Run("異常系: 不正なJSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		var got record
		assert.Error(t, f.Load(path, &got))
	})
}
