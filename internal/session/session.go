package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eaglebank/console/pkg/apiclient"
)

// State はセッションの状態を表す。
type State int

// セッションの3状態。
const (
	// StateUnauthenticated は未認証状態。トークンもユーザーも保持しない。
	StateUnauthenticated State = iota
	// StateAuthenticating はトークンの有効性を確認中の状態。
	StateAuthenticating
	// StateAuthenticated はトークンとユーザーの両方を保持する認証済み状態。
	StateAuthenticated
)

// String はStateの文字列表現を返す。
func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session はプロセス全体の認証状態を保持する。
// 複数のHTTPハンドラから並行に参照されるため、すべての状態はmuで保護する。
// 不変条件: トークン未保持のときユーザーは必ずnil。
type Session struct {
	// client はバックエンドとの通信に使用するAPIクライアント。
	client *apiclient.Client
	// log は構造化ロガー。
	log zerolog.Logger
	// strictStartup がtrueの場合、起動時のプロフィール取得が401以外で
	// 失敗してもトークンを破棄する。デフォルトは401のみ破棄。
	strictStartup bool

	// mu は以下のフィールドの読み書きを直列化する。
	mu sync.Mutex
	// state は現在のセッション状態。
	state State
	// user は取得済みのユーザープロフィール。未認証時はnil。
	user *apiclient.User
	// lastError は直近の失敗の表示用メッセージ。
	lastError string
	// onExpired は有効期限切れ時に呼び出される購読者の一覧。
	onExpired []func()
}

// Option はSessionの生成時設定。
type Option func(*Session)

// WithStrictStartup は起動時のプロフィール取得失敗時に、401以外でも
// トークンを破棄する厳格ポリシーを有効にする。
func WithStrictStartup() Option {
	return func(s *Session) { s.strictStartup = true }
}

// New は新しいSessionを生成し、クライアントの有効期限切れフックを登録する。
func New(client *apiclient.Client, log zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		client: client,
		log:    log,
		state:  StateUnauthenticated,
	}
	for _, opt := range opts {
		opt(s)
	}
	client.SetOnTokenExpired(s.handleTokenExpired)
	return s
}

// handleTokenExpired は401受信時にクライアントから呼び出される。
// 状態を未認証へ戻し、登録済みの全購読者へ通知する。
func (s *Session) handleTokenExpired() {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	subscribers := make([]func(), len(s.onExpired))
	copy(subscribers, s.onExpired)
	s.mu.Unlock()

	s.log.Warn().Msg("セッションの有効期限が切れた")
	for _, fn := range subscribers {
		fn()
	}
}

// OnExpired は有効期限切れ通知の購読者を追加する。
// 明示的なログアウトでは呼び出されず、受動的な期限切れでのみ呼び出される。
func (s *Session) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = append(s.onExpired, fn)
}

// Start は起動時のセッション復元を行う。
//
// 永続化済みトークンがあればプロフィール取得で有効性を確認する。
// ローカルで期限切れが判定できるトークンはネットワークを介さず破棄する。
// 401以外の失敗ではトークンを保持したまま未認証状態に留まり、
// 次回の再試行でセッションを回復できるようにする（strictStartup時を除く）。
func (s *Session) Start(ctx context.Context) {
	token := s.client.Token()
	if token == "" {
		return
	}

	if exp, ok := TokenExpiry(token); ok && time.Now().After(exp) {
		s.log.Info().Time("expired_at", exp).Msg("保存済みトークンは期限切れのため破棄する")
		if err := s.client.ClearToken(); err != nil {
			s.log.Warn().Err(err).Msg("期限切れトークンの破棄に失敗")
		}
		return
	}

	s.setState(StateAuthenticating)
	user, err := s.client.Me(ctx)
	if err != nil {
		switch {
		case apiclient.IsStatus(err, http.StatusUnauthorized):
			// トークンの破棄と状態遷移はクライアントのフック経由で完了している
			s.log.Info().Msg("保存済みトークンは無効だった")
		case s.strictStartup:
			s.log.Warn().Err(err).Msg("起動時のプロフィール取得に失敗したためトークンを破棄する")
			if err := s.client.ClearToken(); err != nil {
				s.log.Warn().Err(err).Msg("トークンの破棄に失敗")
			}
		default:
			// 一時的な障害でログアウトさせない。トークンは保持したまま。
			s.log.Warn().Err(err).Msg("起動時のプロフィール取得に失敗。トークンは保持する")
		}
		s.setState(StateUnauthenticated)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()
	s.log.Info().Str("email", user.Email).Msg("セッションを復元した")
}

// Login は認証情報でログインを試みる。
// 成功時はトークンを保持し、プロフィールを取得して認証済み状態へ遷移する。
// 失敗はtrue/falseで表現し、表示用メッセージはLastErrorで取得する。
func (s *Session) Login(ctx context.Context, email, password string) bool {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.setLastError(apiclient.ErrorMessage(err, "Login failed"))
		return false
	}
	if resp.AccessToken == "" {
		s.setLastError("No token received from server")
		return false
	}

	if err := s.client.SetToken(resp.AccessToken); err != nil {
		// 永続化に失敗してもメモリ上のトークンで継続できる
		s.log.Warn().Err(err).Msg("トークンの永続化に失敗")
	}

	s.setState(StateAuthenticating)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.setState(StateUnauthenticated)
		s.setLastError(apiclient.ErrorMessage(err, "Login failed"))
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()
	s.log.Info().Str("email", user.Email).Msg("ログインした")
	return true
}

// Register は新規ユーザーを登録する。登録だけでは認証されないため、
// 成功後の導線はログイン画面となる。
func (s *Session) Register(ctx context.Context, req apiclient.RegisterRequest) bool {
	if _, err := s.client.Register(ctx, req); err != nil {
		s.setLastError(apiclient.ErrorMessage(err, "Registration failed"))
		return false
	}
	s.log.Info().Str("email", req.Email).Msg("ユーザーを登録した")
	return true
}

// Logout は明示的なログアウト。トークンとユーザーを同期的に破棄する。
// 有効期限切れ通知の購読者は呼び出されない。
func (s *Session) Logout() {
	if err := s.client.ClearToken(); err != nil {
		s.log.Warn().Err(err).Msg("トークンの破棄に失敗")
	}
	s.mu.Lock()
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()
	s.log.Info().Msg("ログアウトした")
}

// RefreshUser はトークンに触れずにプロフィールだけを再取得する。
// プロフィール編集後の画面更新に使用する。
func (s *Session) RefreshUser(ctx context.Context) error {
	user, err := s.client.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// State は現在のセッション状態を返す。
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User は取得済みのユーザープロフィールのコピーを返す。未認証時はnil。
func (s *Session) User() *apiclient.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LastError は直近の失敗の表示用メッセージを返す。
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// TokenExpiry は保持中トークンの有効期限を返す。
// トークン未保持、または期限クレームを持たない場合はfalseを返す。
func (s *Session) TokenExpiry() (time.Time, bool) {
	return TokenExpiry(s.client.Token())
}

// setState は状態を更新する。
func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if state != StateAuthenticated {
		s.user = nil
	}
}

// setLastError は直近の失敗メッセージを記録する。
func (s *Session) setLastError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}
