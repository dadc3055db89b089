package webapp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/console/pkg/apiclient"
)

// handleHome は認証状態に応じてトップ画面へ振り分ける。
func (s *Server) handleHome() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.isAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// handleLoginPage はログイン画面を表示する。認証済みならダッシュボードへ。
func (s *Server) handleLoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.isAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		s.render(c, http.StatusOK, "login.html", gin.H{"Title": "Sign In"})
	}
}

// handleLogin はログインフォームの送信を処理する。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form loginForm
		if err := c.ShouldBind(&form); err != nil {
			s.render(c, http.StatusBadRequest, "login.html", gin.H{
				"Title": "Sign In",
				"Error": "Please enter a valid email address and password.",
				"Email": c.PostForm("email"),
			})
			return
		}

		if !s.session.Login(c.Request.Context(), form.Email, form.Password) {
			s.render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Title": "Sign In",
				"Error": s.session.LastError(),
				"Email": form.Email,
			})
			return
		}

		s.redirectWithSuccess(c, "/dashboard", "Successfully logged in!")
	}
}

// handleRegisterPage はユーザー登録画面を表示する。
func (s *Server) handleRegisterPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.isAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		s.render(c, http.StatusOK, "register.html", gin.H{"Title": "Create Account"})
	}
}

// handleRegister はユーザー登録フォームの送信を処理する。
// 登録だけでは認証されないため、成功時はログイン画面へ誘導する。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form registerForm
		if err := c.ShouldBind(&form); err != nil {
			s.render(c, http.StatusBadRequest, "register.html", gin.H{
				"Title": "Create Account",
				"Error": "Please check the form and try again.",
				"Form":  formValues(c),
			})
			return
		}

		req := apiclient.RegisterRequest{
			Email:       form.Email,
			Password:    form.Password,
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			PhoneNumber: form.PhoneNumber,
			DateOfBirth: form.DateOfBirth,
		}
		if !s.session.Register(c.Request.Context(), req) {
			s.render(c, http.StatusBadGateway, "register.html", gin.H{
				"Title": "Create Account",
				"Error": s.session.LastError(),
				"Form":  formValues(c),
			})
			return
		}

		s.redirectWithSuccess(c, "/login", "Account created successfully! Please log in.")
	}
}

// handleLogout は明示的なログアウトを処理する。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.session.Logout()
		s.redirectWithSuccess(c, "/login", "Logged out successfully.")
	}
}

// formValues は再表示用にPOSTされたフォーム値をそのまま返す。
// パスワードは再表示しない。
func formValues(c *gin.Context) map[string]string {
	values := map[string]string{}
	for key := range c.Request.PostForm {
		if key == "password" {
			continue
		}
		values[key] = c.PostForm(key)
	}
	return values
}
