package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DefaultCORSConfig returns the relay's CORS configuration for the given allow-list.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Requested-With",
		},
		MaxAge: 12 * time.Hour,
	}
}

// CORS creates a CORS middleware. Requests without an Origin header are
// not CORS requests and always pass; listed origins are echoed back and
// anything else is rejected with 403. Credentials are never allowed.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		allowed[o] = struct{}{}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		},
		AllowMethods:        cfg.AllowMethods,
		AllowHeaders:        cfg.AllowHeaders,
		AllowCredentials:    false,
		AllowPrivateNetwork: true,
		MaxAge:              cfg.MaxAge,
	})
}

// HeaderPrivateNetwork lets pages on public origins reach a relay on a
// private address.
const HeaderPrivateNetwork = "Access-Control-Allow-Private-Network"

// PrivateNetwork sets the private-network header on every response,
// including rejected and preflight ones.
func PrivateNetwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderPrivateNetwork, "true")
		c.Next()
	}
}
