package middleware

import (
	"github.com/gin-gonic/gin"
)

const RealIPKey = "real_ip"

// RealIP stores the client IP in the context under "real_ip".
// Forwarding headers are honoured only through the engine settings:
// X-Forwarded-For when the peer is a trusted proxy, and the
// TrustedPlatform header (e.g. CF-Connecting-IP) when one is configured.
// Anything else resolves to the socket peer.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, c.ClientIP())
		c.Next()
	}
}

// ConfigureClientIP applies the proxy trust settings to the engine. An empty
// proxy list trusts nobody.
func ConfigureClientIP(r *gin.Engine, trustedProxies []string, platform string) error {
	switch platform {
	case "":
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "appengine":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		r.TrustedPlatform = platform
	}
	return r.SetTrustedProxies(trustedProxies)
}

// ipFromCtx returns the IP resolved by RealIP, falling back to "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
