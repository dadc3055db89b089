package apiclient

// AccountType は口座種別を表す。
type AccountType string

// バックエンドが定義する口座種別。
const (
	// AccountTypeSavings は普通預金口座。
	AccountTypeSavings AccountType = "SAVINGS"
	// AccountTypeChecking は当座預金口座。
	AccountTypeChecking AccountType = "CHECKING"
	// AccountTypeBusiness は法人口座。
	AccountTypeBusiness AccountType = "BUSINESS"
	// AccountTypeJoint は共同名義口座。
	AccountTypeJoint AccountType = "JOINT"
)

// AccountTypes は選択可能な口座種別の一覧を返す。画面のセレクトボックスで使用する。
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness, AccountTypeJoint}
}

// TransactionType は取引種別を表す。
type TransactionType string

// バックエンドが定義する取引種別。
const (
	// TransactionTypeDeposit は入金。
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	// TransactionTypeWithdrawal は出金。
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionTypes は選択可能な取引種別の一覧を返す。
func TransactionTypes() []TransactionType {
	return []TransactionType{TransactionTypeDeposit, TransactionTypeWithdrawal}
}

// User は認証済みユーザーのプロフィール。
// クライアント側では読み取り専用で、変更はUpdateUser経由でのみ行う。
type User struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Email はログインに使用するメールアドレス。
	Email string `json:"email"`
	// FirstName は名。
	FirstName string `json:"firstName"`
	// LastName は姓。
	LastName string `json:"lastName"`
	// PhoneNumber は電話番号（任意項目）。
	PhoneNumber string `json:"phoneNumber,omitempty"`
	// DateOfBirth は生年月日（YYYY-MM-DD、任意項目）。
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	// CreatedAt は登録日時（RFC3339形式）。
	CreatedAt string `json:"createdAt"`
}

// Account は1ユーザーが所有する口座。
// 残高はサーバーが計算した値をそのまま表示するだけで、クライアントは一切演算しない。
type Account struct {
	// ID は口座の一意識別子。
	ID string `json:"id"`
	// AccountName は口座の表示名。
	AccountName string `json:"accountName"`
	// AccountType は口座種別。
	AccountType AccountType `json:"accountType"`
	// AccountNumber は口座番号。
	AccountNumber string `json:"accountNumber"`
	// Balance はサーバーが返した現在残高。
	Balance float64 `json:"balance"`
	// CreatedAt は開設日時（RFC3339形式）。
	CreatedAt string `json:"createdAt"`
}

// Transaction は1口座に属する入出金イベント。
type Transaction struct {
	// ID は取引の一意識別子。
	ID string `json:"id"`
	// TransactionType は取引種別。
	TransactionType TransactionType `json:"transactionType"`
	// Amount は取引金額。
	Amount float64 `json:"amount"`
	// CreatedAt は取引日時（RFC3339形式）。
	CreatedAt string `json:"createdAt"`
}

// LoginResponse はログイン成功時のレスポンス。
type LoginResponse struct {
	// AccessToken は以降のリクエストに付与するBearerトークン。
	AccessToken string `json:"accessToken"`
	// Email はログインしたユーザーのメールアドレス。
	Email string `json:"email"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password は平文パスワード。TLS前提でそのまま送信する。
	Password string `json:"password"`
}

// RegisterRequest はユーザー登録リクエストのJSON構造。
type RegisterRequest struct {
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password は平文パスワード。
	Password string `json:"password"`
	// FirstName は名。
	FirstName string `json:"firstName"`
	// LastName は姓。
	LastName string `json:"lastName"`
	// PhoneNumber は電話番号（任意項目）。
	PhoneNumber string `json:"phoneNumber,omitempty"`
	// DateOfBirth は生年月日（YYYY-MM-DD、任意項目）。
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// UpdateUserRequest はプロフィール更新（PATCH）のJSON構造。
// nilのフィールドは送信されず、サーバー側で未変更扱いとなる。
type UpdateUserRequest struct {
	// FirstName は名。
	FirstName *string `json:"firstName,omitempty"`
	// LastName は姓。
	LastName *string `json:"lastName,omitempty"`
	// PhoneNumber は電話番号。
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	// DateOfBirth は生年月日（YYYY-MM-DD）。
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// CreateAccountRequest は口座開設リクエストのJSON構造。
type CreateAccountRequest struct {
	// AccountName は口座の表示名。
	AccountName string `json:"accountName"`
	// AccountType は口座種別。
	AccountType AccountType `json:"accountType"`
}

// UpdateAccountRequest は口座更新（PATCH）のJSON構造。
// nilのフィールドは送信されず、サーバー側で未変更扱いとなる。
type UpdateAccountRequest struct {
	// AccountName は口座の表示名。
	AccountName *string `json:"accountName,omitempty"`
	// AccountType は口座種別。
	AccountType *AccountType `json:"accountType,omitempty"`
}

// CreateTransactionRequest は取引作成リクエストのJSON構造。
type CreateTransactionRequest struct {
	// TransactionType は取引種別。
	TransactionType TransactionType `json:"transactionType"`
	// Amount は取引金額。
	Amount float64 `json:"amount"`
}
