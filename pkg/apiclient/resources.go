package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Login は認証情報をトークンと交換する。トークン取得前の呼び出しのため
// Authorizationヘッダーは付与しない。取得したトークンの保持は呼び出し側の責務。
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/login", loginRequest{Email: email, Password: password}, &resp, true, nil)
	return resp, err
}

// Register は新規ユーザーを登録する。登録だけでは認証されないため、
// Authorizationヘッダーは付与しない。
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/v1/users", req, &user, true, nil)
	return user, err
}

// Me は認証中ユーザー自身のプロフィールを取得する。
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, &user, false, nil)
	return user, err
}

// User は指定IDのユーザーを取得する。
func (c *Client) User(ctx context.Context, userID string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/v1/users/"+userID, nil, &user, false, nil)
	return user, err
}

// UpdateUser はユーザープロフィールを部分更新する。
func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPatch, "/v1/users/"+userID, req, &user, false, nil)
	return user, err
}

// DeleteUser は指定IDのユーザーを削除する。
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/users/"+userID, nil, nil, false, nil)
}

// Accounts は認証中ユーザーの口座一覧を取得する。
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.do(ctx, http.MethodGet, "/v1/accounts", nil, &accounts, false, nil)
	return accounts, err
}

// Account は指定IDの口座を取得する。
func (c *Client) Account(ctx context.Context, accountID string) (Account, error) {
	var account Account
	err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID, nil, &account, false, nil)
	return account, err
}

// CreateAccount は口座を開設する。
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPost, "/v1/accounts", req, &account, false, nil)
	return account, err
}

// UpdateAccount は口座情報を部分更新する。
func (c *Client) UpdateAccount(ctx context.Context, accountID string, req UpdateAccountRequest) (Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPatch, "/v1/accounts/"+accountID, req, &account, false, nil)
	return account, err
}

// DeleteAccount は口座を解約する。成功時のレスポンスはボディを持たない。
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/accounts/"+accountID, nil, nil, false, nil)
}

// Transactions は指定口座の取引一覧を取得する。
func (c *Client) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	var transactions []Transaction
	err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID+"/transactions", nil, &transactions, false, nil)
	return transactions, err
}

// Transaction は指定口座の取引を1件取得する。
func (c *Client) Transaction(ctx context.Context, accountID, transactionID string) (Transaction, error) {
	var transaction Transaction
	err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID+"/transactions/"+transactionID, nil, &transaction, false, nil)
	return transaction, err
}

// CreateTransaction は入出金取引を作成する。送金リクエストの二重送信を
// サーバー側で検出できるよう、Idempotency-Keyヘッダーを付与する。
func (c *Client) CreateTransaction(ctx context.Context, accountID string, req CreateTransactionRequest) (Transaction, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.New().String())

	var transaction Transaction
	err := c.do(ctx, http.MethodPost, "/v1/accounts/"+accountID+"/transactions", req, &transaction, false, header)
	return transaction, err
}
