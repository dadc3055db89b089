package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestNew はNew関数を検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("JSON形式でタイムスタンプ付きのログが出力されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(Options{Level: "info", Output: &buf})
		log.Info().Str("key", "value").Msg("hello")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("ログがJSONとしてパースできない: %v, 出力=%s", err, buf.String())
		}
		if entry["message"] != "hello" {
			t.Errorf("message = %v, want %q", entry["message"], "hello")
		}
		if entry["key"] != "value" {
			t.Errorf("key = %v, want %q", entry["key"], "value")
		}
		if _, exists := entry["time"]; !exists {
			t.Error("timeフィールドが存在しない")
		}
	})

	t.Run("レベル未満のログが抑制されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(Options{Level: "warn", Output: &buf})
		log.Info().Msg("suppressed")

		if buf.Len() != 0 {
			t.Errorf("warnレベルでinfoログが出力された: %s", buf.String())
		}
	})

	t.Run("Pretty指定でコンソール形式になること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(Options{Level: "info", Pretty: true, Output: &buf})
		log.Info().Msg("pretty output")

		if !strings.Contains(buf.String(), "pretty output") {
			t.Errorf("メッセージが出力に含まれない: %s", buf.String())
		}
		if json.Valid(buf.Bytes()) {
			t.Error("Pretty指定なのにJSONが出力された")
		}
	})
}

// TestParseLevel はparseLevel関数を検証する。
func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{" DEBUG ", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run("入力 "+tt.input, func(t *testing.T) {
			t.Parallel()

			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
