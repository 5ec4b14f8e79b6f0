package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fadhilmh/fadhil-app-api/internal/common"
	"github.com/fadhilmh/fadhil-app-api/internal/server/services"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

func (s *HTTPServer) root(c *gin.Context) {
	c.String(http.StatusOK, "FADHIL APP API YEAY")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, common.NewError(common.KindValidation, "Invalid request body!"))
		return
	}

	res, err := s.users.Login(c.Request.Context(), services.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "login", "username", req.Username)

	c.SetCookie(TokenCookieName, res.Token, s.users.TokenCookieMaxAge(), "/", "", false, false)
	c.JSON(http.StatusOK, response{
		Status:  http.StatusOK,
		Message: "Login success!",
		Data:    res.Profile,
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, common.NewError(common.KindValidation, "Invalid request body!"))
		return
	}

	profile, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "registered", "username", req.Username)

	c.JSON(http.StatusCreated, response{
		Status:  http.StatusCreated,
		Message: "Register success!",
		Data:    profile,
	})
}

func (s *HTTPServer) me(c *gin.Context) {
	token := requestToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, response{
			Status:  http.StatusUnauthorized,
			Message: "Authorization token required!",
		})
		return
	}

	profile, err := s.users.Profile(c.Request.Context(), token)
	if err != nil {
		if common.KindOf(err) == common.KindUnauthorized {
			c.JSON(http.StatusUnauthorized, response{
				Status:  http.StatusUnauthorized,
				Message: err.Error(),
			})
			return
		}
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    profile,
	})
}

// requestToken extracts the session token from the Authorization header
// (Bearer scheme) or, failing that, from the token cookie.
func requestToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
		return ""
	}
	if token, err := c.Cookie(TokenCookieName); err == nil {
		return token
	}
	return ""
}
