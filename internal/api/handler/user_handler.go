package handler

import (
	"ThreadFarm/internal/api/config"
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/pkg/security"
	"ThreadFarm/internal/pkg/util"
	"ThreadFarm/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	err = s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		token, _ = c.Cookie(config.Cfg.Server.CookieName)
	}
	if token == "" {
		response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
		return
	}
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(config.Cfg.Server.CookieName, "", -1, "/", "", false, true)
	response.Success(c, nil)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userDTO, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) UpdateUserInfo(c *gin.Context) {
	var updateDTO dto.UserUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetUint64("user_id")
	userDTO, err := s.userSvc.UpdateUserInfo(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

// AuthCallback 浏览器回跳入口：用一次性授权码换取会话 Cookie 后重定向
func (s *UserHandler) AuthCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := s.userSvc.ExchangeAuthCode(c.Request.Context(), code)
	if err != nil {
		// 浏览器入口，换码失败退回登录页而不是返回 JSON
		c.Redirect(http.StatusFound, "/login")
		return
	}

	maxAge := int(security.JWTExpirationTime.Seconds())
	c.SetCookie(config.Cfg.Server.CookieName, token, maxAge, "/", "", false, true)

	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = config.Cfg.Server.LandingPath
	}
	c.Redirect(http.StatusFound, next)
}
