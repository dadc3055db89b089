package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TokenStore は永続化されたBearerトークンの読み書きを抽象化する。
// プロセス再起動後もセッションを引き継ぐために使用する。
type TokenStore interface {
	// Load は保存済みトークンを返す。未保存の場合は空文字列を返す。
	Load() (string, error)
	// Save はトークンを保存する。
	Save(token string) error
	// Clear は保存済みトークンを削除する。
	Clear() error
}

// RequestObserver は各リクエストの結果を観測するフック。
// 通信断の場合、statusは0となる。メトリクス収集に使用する。
type RequestObserver func(method, path string, status int, elapsed time.Duration)

// Client はEagle Bank APIへのHTTPクライアント。
// Bearerトークンをメモリに保持し、TokenStoreへミラーリングする。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先バックエンドのベースURL。
	baseURL string
	// log は構造化ロガー。
	log zerolog.Logger
	// observe はリクエスト結果の観測フック。nilの場合は何もしない。
	observe RequestObserver
	// store はトークンの永続化先。nilの場合はメモリのみで保持する。
	store TokenStore

	// mu はトークンとコールバックの読み書きを直列化する。
	// 処理中リクエストの401によるトークン破棄と、並行するログインの
	// 書き込みが混ざらないことを保証する。
	mu sync.Mutex
	// token は現在保持しているBearerトークン。空文字列は未認証を表す。
	token string
	// onTokenExpired は401受信時に呼び出されるコールバック。
	// 登録は常に上書きで、最後の登録のみ有効。
	onTokenExpired func()
}

// Option はClientの生成時設定。
type Option func(*Client)

// WithHTTPClient は内部のHTTPクライアントを差し替える。テストや
// タイムアウト調整に使用する。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore はトークンの永続化先を設定する。
// 生成時に保存済みトークンが読み込まれる。
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// WithObserver はリクエスト結果の観測フックを設定する。
func WithObserver(fn RequestObserver) Option {
	return func(c *Client) { c.observe = fn }
}

// WithLogger は構造化ロガーを設定する。未設定の場合はログを出力しない。
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New は新しいAPIクライアントを生成する。
// TokenStoreが設定されている場合、保存済みトークンを読み込んで保持する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store != nil {
		token, err := c.store.Load()
		if err != nil {
			c.log.Warn().Err(err).Msg("保存済みトークンの読み込みに失敗")
		} else {
			c.token = token
		}
	}
	return c
}

// SetToken はトークンをメモリに保持し、TokenStoreへ保存する。
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	store := c.store
	c.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Save(token); err != nil {
		return fmt.Errorf("トークンの保存に失敗: %w", err)
	}
	return nil
}

// ClearToken はメモリと永続化先の両方からトークンを破棄する。
func (c *Client) ClearToken() error {
	c.mu.Lock()
	c.token = ""
	store := c.store
	c.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("トークンの破棄に失敗: %w", err)
	}
	return nil
}

// Token は現在保持しているBearerトークンを返す。未認証の場合は空文字列。
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetOnTokenExpired は401受信時に呼び出されるコールバックを登録する。
// 登録できるのは1つだけで、再登録すると前の登録は破棄される。
// 複数の購読者が必要な場合は上位層（session）で多重化する。
func (c *Client) SetOnTokenExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTokenExpired = fn
}

// expireToken は401受信時の処理。トークンをメモリと永続化先から破棄し、
// 登録済みコールバックを呼び出す。コールバックはロックの外で実行する。
func (c *Client) expireToken() {
	c.mu.Lock()
	c.token = ""
	store := c.store
	fn := c.onTokenExpired
	c.mu.Unlock()

	if store != nil {
		if err := store.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("期限切れトークンの破棄に失敗")
		}
	}
	if fn != nil {
		fn()
	}
}

// bearerToken は認証ヘッダーに付与するトークンを返す。
func (c *Client) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// observeRequest は観測フックが登録されていれば呼び出す。
func (c *Client) observeRequest(method, path string, status int, started time.Time) {
	if c.observe != nil {
		c.observe(method, path, status, time.Since(started))
	}
}

// errorBody は非2xxレスポンスのエラーボディ。messageフィールドのみ参照する。
type errorBody struct {
	// Message はバックエンドが返したエラーメッセージ。
	Message string `json:"message"`
}

// do はすべてのリソース操作が通過する共通のリクエスト処理。
//
// skipAuthがfalseでトークンを保持している場合、Authorizationヘッダーを付与する。
// 失敗はすべてAPIErrorへ正規化される。401を受信した場合のみ、保持中の
// トークンを破棄して有効期限切れコールバックを呼び出す。それ以外の
// ステータスではトークンに触れない。
func (c *Client) do(ctx context.Context, method, path string, body, result any, skipAuth bool, header http.Header) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if !skipAuth {
		if token := c.bearerToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeRequest(method, path, 0, started)
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("通信に失敗")
		return &APIError{Message: messageNetworkError, Status: 0}
	}
	defer func() { _ = resp.Body.Close() }()
	c.observeRequest(method, path, resp.StatusCode, started)

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.expireToken()
		return &APIError{Message: messageSessionExpired, Status: http.StatusUnauthorized}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		message := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Message != "" {
			message = eb.Message
		}
		return &APIError{Message: message, Status: resp.StatusCode}
	}

	// DELETE等のボディなし成功レスポンスはJSONパースせずに成功とする
	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return nil
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("レスポンスボディのデシリアライズに失敗")
			return &APIError{Message: messageNetworkError, Status: 0}
		}
	}
	return nil
}
