// Package webapp はEagle Bankコンソールの画面を提供するHTTPサーバー。
//
// すべての画面はサーバーサイドレンダリングの薄いフォーム/一覧であり、
// 業務ロジックは一切持たない。データの取得・更新はapiclientへ、
// 認証状態の管理はsessionへ委譲する。
package webapp

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eaglebank/console/internal/session"
	"github.com/eaglebank/console/pkg/apiclient"
	"github.com/eaglebank/console/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server はコンソール画面のHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// client はバックエンドAPIへのクライアント。
	client *apiclient.Client
	// session はプロセス全体の認証状態。
	session *session.Session
	// log は構造化ロガー。
	log zerolog.Logger
}

// NewServer は新しいコンソールサーバーを生成する。
// テンプレートの読み込みとカスタムバリデーションの登録を行う。
func NewServer(port string, client *apiclient.Client, sess *session.Session, log zerolog.Logger) (*Server, error) {
	if err := registerValidations(); err != nil {
		return nil, fmt.Errorf("カスタムバリデーションの登録に失敗: %w", err)
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.AccessLog(log))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router:  router,
		port:    port,
		client:  client,
		session: sess,
		log:     log,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// isAuthenticated はセッションが認証済みかどうかを返す。
// 画面遷移の判定にのみ使用し、認可の最終判断はバックエンドの401に委ねる。
func (s *Server) isAuthenticated() bool {
	return s.session.State() == session.StateAuthenticated
}

// setupRoutes は画面のルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証不要の画面
	s.router.GET("/", s.handleHome())
	s.router.GET("/login", s.handleLoginPage())
	s.router.POST("/login", s.handleLogin())
	s.router.GET("/register", s.handleRegisterPage())
	s.router.POST("/register", s.handleRegister())

	// 認証必須の画面
	authorized := s.router.Group("/")
	authorized.Use(middleware.RequireSession(s.isAuthenticated, "/login"))
	{
		authorized.POST("/logout", s.handleLogout())
		authorized.GET("/dashboard", s.handleDashboard())

		accounts := authorized.Group("/accounts")
		{
			// 口座一覧
			accounts.GET("", s.handleAccountList())
			// 口座開設フォーム
			accounts.GET("/new", s.handleAccountNewPage())
			accounts.POST("/new", s.handleAccountCreate())
			// 口座詳細（取引一覧を含む）
			accounts.GET("/:id", s.handleAccountDetail())
			// 口座編集
			accounts.GET("/:id/edit", s.handleAccountEditPage())
			accounts.POST("/:id/edit", s.handleAccountUpdate())
			// 口座解約
			accounts.POST("/:id/delete", s.handleAccountDelete())
			// 取引作成フォーム
			accounts.GET("/:id/transactions/new", s.handleTransactionNewPage())
			accounts.POST("/:id/transactions/new", s.handleTransactionCreate())
			// 取引詳細
			accounts.GET("/:id/transactions/:transaction_id", s.handleTransactionDetail())
		}

		// 全口座を横断した取引一覧
		authorized.GET("/transactions", s.handleTransactionList())

		// プロフィール
		authorized.GET("/profile", s.handleProfilePage())
		authorized.POST("/profile", s.handleProfileUpdate())
		authorized.POST("/profile/delete", s.handleProfileDelete())
	}

	// 運用エンドポイント
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "console"})
	})
}
