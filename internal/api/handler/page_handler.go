package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler 页面路由。前端独立部署时这些路由仅保证会话门禁语义可用
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (s *PageHandler) page(title string) gin.HandlerFunc {
	body := fmt.Sprintf("<!DOCTYPE html><html lang=\"zh\"><head><meta charset=\"utf-8\"><title>%s - ThreadFarm</title></head><body><div id=\"app\"></div></body></html>", title)
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}

func (s *PageHandler) Login() gin.HandlerFunc         { return s.page("登录") }
func (s *PageHandler) Signup() gin.HandlerFunc        { return s.page("注册") }
func (s *PageHandler) ResetPassword() gin.HandlerFunc { return s.page("重置密码") }
func (s *PageHandler) Dashboard() gin.HandlerFunc     { return s.page("工作台") }
func (s *PageHandler) Create() gin.HandlerFunc        { return s.page("创作向导") }
func (s *PageHandler) Settings() gin.HandlerFunc      { return s.page("设置") }
