package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/repository"
	"cartoonhub/internal/httpapi/service"
)

const actorKey = "actor"

// Guard authenticates requests. Token verification alone is not enough: a
// lock must bite before the token expires, so every authenticated request
// re-reads the account row.
type Guard struct {
	authService service.AuthService
	userRepo    repository.UserRepository
}

func NewGuard(authService service.AuthService, userRepo repository.UserRepository) *Guard {
	return &Guard{authService: authService, userRepo: userRepo}
}

// Authenticate verifies the bearer token, checks the account is neither
// deleted nor locked, and stores the actor on the request context. Role
// checks come later via RequireRoles.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := g.authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		// Reset tokens only open the reset endpoint, never the API.
		if claims.Type != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := g.userRepo.FindByID(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}
		if user.IsLocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is locked"})
			return
		}

		c.Set(actorKey, service.Actor{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
		c.Next()
	}
}

// CurrentActor returns the actor set by Authenticate. The zero Actor means
// the route was wired without the middleware, which is a routing bug.
func CurrentActor(c *gin.Context) service.Actor {
	value, ok := c.Get(actorKey)
	if !ok {
		return service.Actor{}
	}
	actor, _ := value.(service.Actor)
	return actor
}

// RequireRoles allows only the listed roles past. There is no role
// hierarchy; admins must be listed explicitly where they are allowed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if _, ok := allowed[actor.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}
