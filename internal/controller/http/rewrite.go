package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// URLRewriter maps the public path shapes onto internal resource paths
// before routing:
//
//	/api/<rest>                      -> /<rest>
//	/product/<resource>/<id>/show    -> /<resource>/<id>
//
// Rewritten requests are re-dispatched through the engine; the rewritten
// path matches neither rule, so the rewrite runs at most once.
func URLRewriter(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api/") {
			c.Request.URL.Path = strings.TrimPrefix(path, "/api")
			engine.HandleContext(c)
			c.Abort()
			return
		}

		parts := strings.Split(strings.Trim(path, "/"), "/")
		if len(parts) == 4 && parts[0] == "product" && parts[3] == "show" {
			c.Request.URL.Path = "/" + parts[1] + "/" + parts[2]
			engine.HandleContext(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
