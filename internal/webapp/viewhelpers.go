package webapp

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/console/pkg/apiclient"
)

// flashCookie はワンショット通知を運ぶCookie名。
const flashCookie = "console_flash"

// フラッシュメッセージの種別。
const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash は次の1画面にだけ表示する通知メッセージ。
type flash struct {
	// Kind はsuccessまたはerror。
	Kind string
	// Message は表示文言。
	Message string
}

// setFlash は次のリクエストで1回だけ表示される通知をCookieに積む。
func setFlash(c *gin.Context, kind, message string) {
	value := url.QueryEscape(kind + "|" + message)
	c.SetCookie(flashCookie, value, 60, "/", "", false, true)
}

// popFlash は積まれた通知を取り出し、Cookieを破棄する。
func popFlash(c *gin.Context) (flash, bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return flash{}, false
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return flash{}, false
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok || message == "" {
		return flash{}, false
	}
	return flash{Kind: kind, Message: message}, true
}

// render はテンプレートを描画する。ユーザー情報とフラッシュ通知を
// 共通データとして補完する。
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Eagle Bank"
	}
	data["User"] = s.session.User()
	if f, ok := popFlash(c); ok {
		data["Flash"] = f
	}
	c.HTML(status, name, data)
}

// failPage は画面表示用データの取得に失敗したときの共通処理。
// 401ならログイン画面へ誘導し、それ以外はエラー画面を描画する。
func (s *Server) failPage(c *gin.Context, err error, fallback string) {
	if apiclient.IsStatus(err, http.StatusUnauthorized) {
		setFlash(c, flashError, apiclient.ErrorMessage(err, fallback))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	status := http.StatusBadGateway
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= http.StatusBadRequest {
		status = apiErr.Status
	}
	s.render(c, status, "error.html", gin.H{
		"Title":   "Error",
		"Message": apiclient.ErrorMessage(err, fallback),
	})
}

// redirectWithSuccess は成功通知を積んでリダイレクトする。
func (s *Server) redirectWithSuccess(c *gin.Context, location, message string) {
	setFlash(c, flashSuccess, message)
	c.Redirect(http.StatusSeeOther, location)
}

// templateFuncs は全テンプレートで使用するヘルパー関数を返す。
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// money は金額を$1,234.56形式……ではなく$1234.56形式で整形する。
		// 桁区切りはロケール依存のためサーバー側では行わない。
		"money": func(amount float64) string {
			return fmt.Sprintf("$%.2f", amount)
		},
		// datetime はRFC3339の日時を画面表示用に整形する。
		// パースできない値はそのまま表示する。
		"datetime": func(value string) string {
			t, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return value
			}
			return t.Local().Format("Jan 2, 2006 3:04 PM")
		},
	}
}
