package webapp

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/console/pkg/apiclient"
)

// mappedTransaction は所属口座の情報を補った取引の表示用データ。
// バックエンドの取引レスポンスは口座情報を含まないため、画面側で合成する。
type mappedTransaction struct {
	apiclient.Transaction
	// AccountID は所属口座のID。詳細画面へのリンクに使用する。
	AccountID string
	// AccountName は所属口座の表示名。
	AccountName string
}

// dashboardRecentLimit はダッシュボードに表示する直近取引の最大件数。
const dashboardRecentLimit = 10

// dashboardPerAccountLimit はダッシュボード集計時に1口座から取り込む最大件数。
const dashboardPerAccountLimit = 5

// handleDashboard はダッシュボードを表示する。
// 全口座の残高合計と、口座を横断した直近の取引を集約する。
// 一部の口座で取引取得に失敗しても、残りの口座だけで画面を組み立てる。
func (s *Server) handleDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		accounts, err := s.client.Accounts(ctx)
		if err != nil {
			s.failPage(c, err, "Failed to load dashboard data")
			return
		}

		var total float64
		var recent []mappedTransaction
		for _, account := range accounts {
			total += account.Balance

			transactions, err := s.client.Transactions(ctx, account.ID)
			if err != nil {
				s.log.Warn().Err(err).Str("account_id", account.ID).
					Msg("口座の取引取得に失敗したためダッシュボードから除外する")
				continue
			}
			if len(transactions) > dashboardPerAccountLimit {
				transactions = transactions[:dashboardPerAccountLimit]
			}
			recent = append(recent, mapTransactions(account, transactions)...)
		}

		sortTransactionsNewestFirst(recent)
		if len(recent) > dashboardRecentLimit {
			recent = recent[:dashboardRecentLimit]
		}

		s.render(c, http.StatusOK, "dashboard.html", gin.H{
			"Title":              "Dashboard",
			"Accounts":           accounts,
			"TotalBalance":       total,
			"RecentTransactions": recent,
		})
	}
}

// handleTransactionList は全口座を横断した取引一覧を新しい順に表示する。
// ダッシュボードと異なり、1口座でも取得に失敗したらエラー画面を表示する。
func (s *Server) handleTransactionList() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		accounts, err := s.client.Accounts(ctx)
		if err != nil {
			s.failPage(c, err, "Failed to load transactions")
			return
		}

		var all []mappedTransaction
		for _, account := range accounts {
			transactions, err := s.client.Transactions(ctx, account.ID)
			if err != nil {
				s.failPage(c, err, "Failed to load transactions")
				return
			}
			all = append(all, mapTransactions(account, transactions)...)
		}
		sortTransactionsNewestFirst(all)

		s.render(c, http.StatusOK, "transactions.html", gin.H{
			"Title":        "Transactions",
			"Transactions": all,
		})
	}
}

// handleTransactionNewPage は取引作成フォームを表示する。
func (s *Server) handleTransactionNewPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := s.client.Account(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.failPage(c, err, "Failed to load account")
			return
		}
		s.render(c, http.StatusOK, "transaction_new.html", gin.H{
			"Title":            "New Transaction",
			"Account":          account,
			"TransactionTypes": apiclient.TransactionTypes(),
		})
	}
}

// handleTransactionCreate は取引作成フォームの送信を処理する。
func (s *Server) handleTransactionCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		accountID := c.Param("id")

		var form transactionForm
		if err := c.ShouldBind(&form); err != nil {
			account, loadErr := s.client.Account(ctx, accountID)
			if loadErr != nil {
				s.failPage(c, loadErr, "Failed to load account")
				return
			}
			s.render(c, http.StatusBadRequest, "transaction_new.html", gin.H{
				"Title":            "New Transaction",
				"Account":          account,
				"TransactionTypes": apiclient.TransactionTypes(),
				"Error":            "Please enter a valid transaction type and a positive amount.",
			})
			return
		}

		_, err := s.client.CreateTransaction(ctx, accountID, apiclient.CreateTransactionRequest{
			TransactionType: apiclient.TransactionType(form.TransactionType),
			Amount:          form.Amount,
		})
		if err != nil {
			if apiclient.IsStatus(err, http.StatusUnauthorized) {
				s.failPage(c, err, "Failed to create transaction")
				return
			}
			account, loadErr := s.client.Account(ctx, accountID)
			if loadErr != nil {
				s.failPage(c, loadErr, "Failed to load account")
				return
			}
			s.render(c, http.StatusBadGateway, "transaction_new.html", gin.H{
				"Title":            "New Transaction",
				"Account":          account,
				"TransactionTypes": apiclient.TransactionTypes(),
				"Error":            apiclient.ErrorMessage(err, "Failed to create transaction"),
			})
			return
		}

		s.redirectWithSuccess(c, "/accounts/"+accountID, "Transaction created successfully!")
	}
}

// handleTransactionDetail は取引を1件表示する。
func (s *Server) handleTransactionDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		accountID := c.Param("id")

		account, err := s.client.Account(ctx, accountID)
		if err != nil {
			s.failPage(c, err, "Failed to load account")
			return
		}
		transaction, err := s.client.Transaction(ctx, accountID, c.Param("transaction_id"))
		if err != nil {
			s.failPage(c, err, "Failed to load transaction")
			return
		}

		s.render(c, http.StatusOK, "transaction.html", gin.H{
			"Title":       "Transaction Detail",
			"Account":     account,
			"Transaction": transaction,
		})
	}
}

// mapTransactions は取引へ所属口座の情報を付与する。
func mapTransactions(account apiclient.Account, transactions []apiclient.Transaction) []mappedTransaction {
	mapped := make([]mappedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		mapped = append(mapped, mappedTransaction{
			Transaction: tx,
			AccountID:   account.ID,
			AccountName: account.AccountName,
		})
	}
	return mapped
}

// sortTransactionsNewestFirst は取引を作成日時の降順に並べ替える。
// 日時がパースできない取引は末尾に回す。
func sortTransactionsNewestFirst(transactions []mappedTransaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		ti, okI := parseCreatedAt(transactions[i].CreatedAt)
		tj, okJ := parseCreatedAt(transactions[j].CreatedAt)
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}

// parseCreatedAt はRFC3339形式の日時をパースする。
func parseCreatedAt(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
