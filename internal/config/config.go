// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Config はコンソールアプリ全体の設定。
type Config struct {
	// Port はローカルUIサーバーのリッスンポート。
	Port string `env:"CONSOLE_PORT, default=3000"`
	// APIBaseURL は接続先Eagle Bank APIのベースURL。
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8080"`
	// LogLevel はログレベル（trace/debug/info/warn/error）。
	LogLevel string `env:"CONSOLE_LOG_LEVEL, default=info"`
	// PrettyLog がtrueの場合、人間が読みやすいコンソール形式でログを出力する。
	PrettyLog bool `env:"CONSOLE_PRETTY_LOG, default=false"`
	// DataDir はトークン等を保存するディレクトリ。未指定の場合は
	// OS標準のユーザー設定ディレクトリ配下を使用する。
	DataDir string `env:"CONSOLE_DATA_DIR"`
	// StrictStartup がtrueの場合、起動時のプロフィール取得が401以外で
	// 失敗してもセッションを破棄する。デフォルトは401のみ破棄。
	StrictStartup bool `env:"CONSOLE_STRICT_STARTUP, default=false"`
}

// Load は環境変数から設定を読み込む。
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	return &cfg, nil
}

// DatabasePath はトークン保存用SQLiteファイルのパスを返す。
// 必要に応じてディレクトリを作成する。
func (c *Config) DatabasePath() (string, error) {
	dir := c.DataDir
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("ユーザー設定ディレクトリの取得に失敗: %w", err)
		}
		dir = filepath.Join(configDir, "eaglebank-console")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("データディレクトリの作成に失敗: %w", err)
	}
	return filepath.Join(dir, "console.db"), nil
}
