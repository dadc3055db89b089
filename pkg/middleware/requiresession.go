package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSession は未認証のブラウザリクエストをログイン画面へ
// リダイレクトするGinミドルウェアを返す。
//
// 認証状態の判定はisAuthenticatedに委譲する。認可の最終判断は
// バックエンドの401であり、ここでの判定は画面遷移のためだけに使用する。
func RequireSession(isAuthenticated func() bool, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
