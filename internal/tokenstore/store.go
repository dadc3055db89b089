// Package tokenstore はBearerトークンをローカルのSQLiteファイルへ永続化する。
//
// ブラウザアプリにおけるローカルストレージに相当し、プロセスを再起動しても
// セッションを引き継げるようにする。保存されるのはトークン1件のみで、
// キー名はアプリのライフタイムを通じて固定。
package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// tokenName はBearerトークンを保存するキー名。変更してはならない。
const tokenName = "token"

// Store はSQLiteを用いたトークンの永続化ストア。
// apiclient.TokenStoreを実装する。
type Store struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// Open は指定DSNのSQLiteデータベースを開き、スキーマを初期化する。
// テストでは ":memory:" を渡す。
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return &Store{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// Load は保存済みトークンを返す。未保存の場合は空文字列を返す。
func (s *Store) Load() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE name = ?", tokenName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("トークンの読み込みに失敗: %w", err)
	}
	return value, nil
}

// Save はトークンを保存する。既存の値は上書きされる。
// 空文字列の保存はClearと同じ扱いとする。
func (s *Store) Save(token string) error {
	if token == "" {
		return s.Clear()
	}
	_, err := s.db.Exec(`
		INSERT INTO credentials (name, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, tokenName, token)
	if err != nil {
		return fmt.Errorf("トークンの保存に失敗: %w", err)
	}
	return nil
}

// Clear は保存済みトークンを削除する。未保存でもエラーにはならない。
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM credentials WHERE name = ?", tokenName); err != nil {
		return fmt.Errorf("トークンの削除に失敗: %w", err)
	}
	return nil
}
