package webapp

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// loginForm はログイン画面の入力。
type loginForm struct {
	// Email はメールアドレス。
	Email string `form:"email" binding:"required,email"`
	// Password は平文パスワード。
	Password string `form:"password" binding:"required"`
}

// registerForm はユーザー登録画面の入力。
type registerForm struct {
	// Email はメールアドレス。
	Email string `form:"email" binding:"required,email"`
	// Password は平文パスワード。8文字以上を要求する。
	Password string `form:"password" binding:"required,min=8"`
	// FirstName は名。
	FirstName string `form:"firstName" binding:"required"`
	// LastName は姓。
	LastName string `form:"lastName" binding:"required"`
	// PhoneNumber は電話番号（任意、E.164形式）。
	PhoneNumber string `form:"phoneNumber" binding:"omitempty,e164"`
	// DateOfBirth は生年月日（任意、YYYY-MM-DD、未来日は不可）。
	DateOfBirth string `form:"dateOfBirth" binding:"omitempty,notfuture"`
}

// profileForm はプロフィール編集画面の入力。
type profileForm struct {
	// FirstName は名。
	FirstName string `form:"firstName" binding:"required"`
	// LastName は姓。
	LastName string `form:"lastName" binding:"required"`
	// PhoneNumber は電話番号（任意、E.164形式）。
	PhoneNumber string `form:"phoneNumber" binding:"omitempty,e164"`
	// DateOfBirth は生年月日（任意、YYYY-MM-DD、未来日は不可）。
	DateOfBirth string `form:"dateOfBirth" binding:"omitempty,notfuture"`
}

// accountForm は口座開設・編集画面の入力。
type accountForm struct {
	// AccountName は口座の表示名。
	AccountName string `form:"accountName" binding:"required"`
	// AccountType は口座種別。
	AccountType string `form:"accountType" binding:"required,oneof=SAVINGS CHECKING BUSINESS JOINT"`
}

// transactionForm は取引作成画面の入力。
type transactionForm struct {
	// TransactionType は取引種別。
	TransactionType string `form:"transactionType" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	// Amount は取引金額。0より大きい値のみ許可する。
	Amount float64 `form:"amount" binding:"required,gt=0"`
}

// registerOnce はプロセス全体で共有されるバリデーターへの登録を1回に抑える。
var registerOnce sync.Once

// registerErr は初回登録の結果。2回目以降の呼び出しにも同じ結果を返す。
var registerErr error

// registerValidations はGinのバリデーターへカスタム検証を登録する。
func registerValidations() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("ginのバリデーターエンジンが*validator.Validateではない")
			return
		}
		registerErr = v.RegisterValidation("notfuture", notFuture)
	})
	return registerErr
}

// notFuture はYYYY-MM-DD形式の日付が未来日でないことを検証する。
// 形式不正も検証エラーとする。
func notFuture(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	return !d.After(time.Now())
}
