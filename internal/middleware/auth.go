package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/config"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
)

const ContextActor = "actor"

// AuthMiddleware verifies the HS256 bearer token issued by the marketplace
// identity service. "sub" carries the user id and "role" is customer or
// cleaner.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			unauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "invalid_token_claims")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			unauthorized(c, "invalid_token_payload")
			return
		}
		id, err := uuid.Parse(sub)
		if err != nil {
			unauthorized(c, "invalid_token_payload")
			return
		}

		role, _ := claims["role"].(string)
		actor := domain.Actor{ID: id, Role: domain.Role(role)}
		if !actor.IsCustomer() && !actor.IsCleaner() {
			unauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

func unauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Please sign in again.")
	c.Abort()
}

// RequireRole lets through only actors with one of roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			unauthorized(c, "missing_actor")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "You are not allowed to do this.")
		c.Abort()
	}
}

func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
