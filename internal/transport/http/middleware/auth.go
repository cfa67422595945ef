package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const errUnauthorized = "Unauthorized"

// Auth validates a Bearer JWT and sets "userID" in the gin context.
func Auth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerSubject(c, jwtKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// ClientID resolves the cart owner. An authenticated user owns their
// cart by user ID; anonymous clients are keyed by the X-Client-ID header,
// issued here on first contact and echoed back so the client can persist it.
func ClientID(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerSubject(c, jwtKey); ok {
			c.Set("cartOwner", userID)
			c.Next()
			return
		}

		id := c.GetHeader("X-Client-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("cartOwner", id)
		c.Header("X-Client-ID", id)
		c.Next()
	}
}

func bearerSubject(c *gin.Context, jwtKey []byte) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	rawToken := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
