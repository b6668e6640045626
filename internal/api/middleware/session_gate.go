package middleware

import (
	"ThreadFarm/internal/api/config"
	"ThreadFarm/internal/pkg/security"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// 无需登录即可访问的页面
var publicPaths = map[string]bool{
	"/login":          true,
	"/signup":         true,
	"/reset-password": true,
	"/auth/callback":  true,
}

// 已登录用户才需要被弹回落地页的入口页。
// 重置密码页登录后也要能访问，回跳入口拦了会打断换码流程
var authEntryPaths = map[string]bool{
	"/login":  true,
	"/signup": true,
}

// hasValidSession 只看会话 Cookie，页面路由不走 Bearer 头
func hasValidSession(c *gin.Context) bool {
	cookie, err := c.Cookie(config.Cfg.Server.CookieName)
	if err != nil || cookie == "" {
		return false
	}
	_, err = security.ValidateToken(cookie)
	return err == nil
}

// SessionGateMiddleware 页面级会话门禁：
// 未登录访问受保护页面跳登录页并记录回跳地址，已登录访问公开页面跳落地页。
func SessionGateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		loggedIn := hasValidSession(c)

		if publicPaths[path] {
			if loggedIn && authEntryPaths[path] {
				c.Redirect(http.StatusFound, config.Cfg.Server.LandingPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !loggedIn {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}

		c.Next()
	}
}
