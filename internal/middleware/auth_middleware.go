package middleware

import (
	"errors"
	"os"
	"slices"
	"strings"

	autherrors "resto-ops/internal/auth/errors"
	"resto-ops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// bearerToken finds the access token in the Authorization header or, for
// browser sessions, in the access_token cookie.
func bearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates the access token and copies the identity claims
// (user, restaurant, role, display name) into the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			appErr := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				appErr = autherrors.ErrTokenExpired
			}
			response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, autherrors.ErrInvalidToken.Code, "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(string)
		restaurantID, _ := claims["restaurant_id"].(string)
		if userID == "" || restaurantID == "" {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, autherrors.ErrInvalidToken.Code, "Identity claims missing from token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		name, _ := claims["name"].(string)

		c.Set("user_id", userID)
		c.Set("restaurant_id", restaurantID)
		c.Set("role", role)
		c.Set("actor_name", name)

		c.Next()
	}
}

// RoleMiddleware is the whole authorization story: a single role string per
// user, checked against an allow list.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" || !slices.Contains(allowedRoles, role) {
			forbidden := autherrors.ErrForbidden
			response.Error(c, forbidden.HTTPStatus, forbidden.Code, forbidden.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
