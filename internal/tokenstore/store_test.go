package tokenstore

import (
	"path/filepath"
	"testing"
)

// setupTestStore はインメモリSQLiteでテスト用ストアを構築する。
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("インメモリストアの作成に失敗: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestOpen はOpen関数を検証する。
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("インメモリDBでストアが生成されること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if store == nil {
			t.Fatal("Open()がnilを返した")
		}
	})

	t.Run("ファイルDBでもストアが生成されること", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "console.db")
		store, err := Open(path)
		if err != nil {
			t.Fatalf("Open()でエラーが発生: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
	})
}

// TestLoad はLoad関数を検証する。
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("未保存の場合は空文字列が返ること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		token, err := store.Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if token != "" {
			t.Errorf("Load() = %q, want empty string", token)
		}
	})

	t.Run("保存済みトークンが読み込めること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if err := store.Save("tok1"); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}

		token, err := store.Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if token != "tok1" {
			t.Errorf("Load() = %q, want %q", token, "tok1")
		}
	})
}

// TestSave はSave関数を検証する。
func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("既存のトークンが上書きされること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if err := store.Save("old-token"); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}
		if err := store.Save("new-token"); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}

		token, err := store.Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if token != "new-token" {
			t.Errorf("Load() = %q, want %q", token, "new-token")
		}
	})

	t.Run("空文字列の保存はClearと同じ扱いになること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if err := store.Save("tok1"); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}
		if err := store.Save(""); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}

		token, err := store.Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if token != "" {
			t.Errorf("Load() = %q, want empty string", token)
		}
	})
}

// TestClear はClear関数を検証する。
func TestClear(t *testing.T) {
	t.Parallel()

	t.Run("保存済みトークンが削除されること", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if err := store.Save("tok1"); err != nil {
			t.Fatalf("Save()でエラーが発生: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear()でエラーが発生: %v", err)
		}

		token, err := store.Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if token != "" {
			t.Errorf("Load() = %q, want empty string", token)
		}
	})

	t.Run("未保存の状態でClearしてもエラーにならないこと", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear()でエラーが発生: %v", err)
		}
	})
}
