package tokenstore

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。資格情報をキー名で引く1テーブルのみ。
const schema = `
CREATE TABLE IF NOT EXISTS credentials (
    -- 資格情報のキー名
    name TEXT PRIMARY KEY,
    -- 資格情報の値
    value TEXT NOT NULL,
    -- 最終更新日時
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
