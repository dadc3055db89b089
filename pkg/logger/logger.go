// Package logger はzerologベースの構造化ロガーを構築する。
//
// グローバルなシングルトンは持たず、生成したロガーを各コンポーネントへ
// 注入して使用する。
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options はロガーの生成時設定。
type Options struct {
	// Level は最小ログレベル（trace/debug/info/warn/error）。
	// 空または未知の値の場合はinfoとなる。
	Level string
	// Pretty がtrueの場合、人間が読みやすいコンソール形式で出力する。
	// 本番運用では純粋なJSONを出力するためfalseにする。
	Pretty bool
	// Output はログの出力先。nilの場合はos.Stdout。
	Output io.Writer
}

// New は設定に従ってロガーを生成する。
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// parseLevel はレベル文字列をzerolog.Levelへ変換する。未知の値はinfo扱い。
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
