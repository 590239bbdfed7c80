package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevLogin identifies the credit analyst via cookie; no real auth yet,
// intended for local and pilot deployments only.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie("ANALYST_UID"); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				if q := c.QueryParam("uid"); q != "" {
					uid = q
				} else {
					uid = "analyst_dev"
				}
				c.SetCookie(&http.Cookie{Name: "ANALYST_UID", Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
