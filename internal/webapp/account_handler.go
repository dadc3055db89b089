package webapp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/console/pkg/apiclient"
)

// handleAccountList は口座一覧を表示する。
func (s *Server) handleAccountList() gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := s.client.Accounts(c.Request.Context())
		if err != nil {
			s.failPage(c, err, "Failed to load accounts")
			return
		}
		s.render(c, http.StatusOK, "accounts.html", gin.H{
			"Title":    "Accounts",
			"Accounts": accounts,
		})
	}
}

// handleAccountNewPage は口座開設フォームを表示する。
func (s *Server) handleAccountNewPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "account_new.html", gin.H{
			"Title":        "Open Account",
			"AccountTypes": apiclient.AccountTypes(),
		})
	}
}

// handleAccountCreate は口座開設フォームの送信を処理する。
func (s *Server) handleAccountCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form accountForm
		if err := c.ShouldBind(&form); err != nil {
			s.render(c, http.StatusBadRequest, "account_new.html", gin.H{
				"Title":        "Open Account",
				"AccountTypes": apiclient.AccountTypes(),
				"Error":        "Please check the form and try again.",
				"Form":         formValues(c),
			})
			return
		}

		account, err := s.client.CreateAccount(c.Request.Context(), apiclient.CreateAccountRequest{
			AccountName: form.AccountName,
			AccountType: apiclient.AccountType(form.AccountType),
		})
		if err != nil {
			if apiclient.IsStatus(err, http.StatusUnauthorized) {
				s.failPage(c, err, "Failed to create account")
				return
			}
			s.render(c, http.StatusBadGateway, "account_new.html", gin.H{
				"Title":        "Open Account",
				"AccountTypes": apiclient.AccountTypes(),
				"Error":        apiclient.ErrorMessage(err, "Failed to create account"),
				"Form":         formValues(c),
			})
			return
		}

		s.redirectWithSuccess(c, "/accounts/"+account.ID, "Account created successfully!")
	}
}

// handleAccountDetail は口座詳細と取引履歴を表示する。
func (s *Server) handleAccountDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		accountID := c.Param("id")

		account, err := s.client.Account(ctx, accountID)
		if err != nil {
			s.failPage(c, err, "Failed to load account")
			return
		}
		transactions, err := s.client.Transactions(ctx, accountID)
		if err != nil {
			s.failPage(c, err, "Failed to load transactions")
			return
		}

		s.render(c, http.StatusOK, "account.html", gin.H{
			"Title":        account.AccountName,
			"Account":      account,
			"Transactions": transactions,
		})
	}
}

// handleAccountEditPage は口座編集フォームを表示する。
func (s *Server) handleAccountEditPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := s.client.Account(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.failPage(c, err, "Failed to load account")
			return
		}
		s.render(c, http.StatusOK, "account_edit.html", gin.H{
			"Title":        "Edit Account",
			"Account":      account,
			"AccountTypes": apiclient.AccountTypes(),
		})
	}
}

// handleAccountUpdate は口座編集フォームの送信を処理する。
func (s *Server) handleAccountUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.Param("id")

		var form accountForm
		if err := c.ShouldBind(&form); err != nil {
			account, loadErr := s.client.Account(c.Request.Context(), accountID)
			if loadErr != nil {
				s.failPage(c, loadErr, "Failed to load account")
				return
			}
			s.render(c, http.StatusBadRequest, "account_edit.html", gin.H{
				"Title":        "Edit Account",
				"Account":      account,
				"AccountTypes": apiclient.AccountTypes(),
				"Error":        "Please check the form and try again.",
			})
			return
		}

		accountType := apiclient.AccountType(form.AccountType)
		_, err := s.client.UpdateAccount(c.Request.Context(), accountID, apiclient.UpdateAccountRequest{
			AccountName: &form.AccountName,
			AccountType: &accountType,
		})
		if err != nil {
			s.failPage(c, err, "Failed to update account")
			return
		}

		s.redirectWithSuccess(c, "/accounts/"+accountID, "Account updated successfully!")
	}
}

// handleAccountDelete は口座の解約を処理する。
func (s *Server) handleAccountDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.client.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
			s.failPage(c, err, "Failed to delete account")
			return
		}
		s.redirectWithSuccess(c, "/accounts", "Account deleted successfully.")
	}
}
