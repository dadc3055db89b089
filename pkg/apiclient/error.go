package apiclient

import (
	"errors"
	"fmt"
)

// APIError はAPI呼び出しの失敗を表す唯一のエラー型。
// 通信断、HTTPエラー、セッション切れのいずれもこの形に正規化される。
type APIError struct {
	// Message は利用者に表示可能なエラーメッセージ。
	Message string `json:"message"`
	// Status はHTTPステータスコード。通信断の場合は0。
	Status int `json:"status"`
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("status=%d: %s", e.Status, e.Message)
}

// 正規化されたエラーメッセージ。バックエンドとの契約上、文言は固定。
const (
	messageNetworkError   = "Network error or server unavailable"
	messageSessionExpired = "Session expired. Please log in again."
)

// IsStatus はerrが指定ステータスのAPIErrorかどうかを判定する。
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

// ErrorMessage はerrから表示用メッセージを取り出す。
// APIErrorでない場合はフォールバック文字列を返す。
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
