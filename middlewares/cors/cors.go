package cors

import (
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsMiddleware allows the public booking form, hosted anywhere, to call
// the API. Any origin, Content-Type header, preflight answered with 204.
func CorsMiddleware() gin.HandlerFunc {
	return gincors.New(gincors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	})
}
