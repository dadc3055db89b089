package webapp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/console/pkg/apiclient"
)

// handleProfilePage はプロフィール画面を表示する。
func (s *Server) handleProfilePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.session.User()
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.render(c, http.StatusOK, "profile.html", gin.H{
			"Title":   "Profile",
			"Profile": user,
		})
	}
}

// handleProfileUpdate はプロフィール編集フォームの送信を処理する。
// 更新成功後はセッション上のプロフィールを再取得して画面へ反映する。
func (s *Server) handleProfileUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.session.User()
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		var form profileForm
		if err := c.ShouldBind(&form); err != nil {
			s.render(c, http.StatusBadRequest, "profile.html", gin.H{
				"Title":   "Profile",
				"Profile": user,
				"Error":   "Please check the form and try again.",
			})
			return
		}

		req := apiclient.UpdateUserRequest{
			FirstName: &form.FirstName,
			LastName:  &form.LastName,
		}
		if form.PhoneNumber != "" {
			req.PhoneNumber = &form.PhoneNumber
		}
		if form.DateOfBirth != "" {
			req.DateOfBirth = &form.DateOfBirth
		}

		if _, err := s.client.UpdateUser(c.Request.Context(), user.ID, req); err != nil {
			if apiclient.IsStatus(err, http.StatusUnauthorized) {
				s.failPage(c, err, "Failed to update profile")
				return
			}
			s.render(c, http.StatusBadGateway, "profile.html", gin.H{
				"Title":   "Profile",
				"Profile": user,
				"Error":   apiclient.ErrorMessage(err, "Failed to update profile"),
			})
			return
		}

		if err := s.session.RefreshUser(c.Request.Context()); err != nil {
			s.log.Warn().Err(err).Msg("更新後のプロフィール再取得に失敗")
		}

		s.redirectWithSuccess(c, "/profile", "Profile updated successfully!")
	}
}

// handleProfileDelete はユーザー自身の削除を処理する。
// 削除成功後はローカルのセッションも破棄する。
func (s *Server) handleProfileDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.session.User()
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		if err := s.client.DeleteUser(c.Request.Context(), user.ID); err != nil {
			s.failPage(c, err, "Failed to delete account")
			return
		}

		s.session.Logout()
		s.redirectWithSuccess(c, "/login", "Your account has been deleted.")
	}
}
