package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry はJWTトークンのexpクレームから有効期限を読み取る。
//
// クライアントは署名鍵を持たないため検証は行わない。読み取った期限は
// 表示と「明らかに期限切れのトークンで無駄な通信をしない」判定にのみ
// 使用し、認可判定には使用しない。認可の最終判断は常にサーバーの401。
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
