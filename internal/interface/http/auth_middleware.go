package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/internal/domain/booking"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

// optionalAuthMiddleware resolves the booking owner. Requests without an
// Authorization header continue as guests; a bad token is still rejected.
func optionalAuthMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			setOwner(c, booking.Owner{})
			c.Next()
			return
		}
		if !authenticate(c, svc) {
			return
		}
		c.Next()
	}
}

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		if !authenticate(c, svc) {
			return
		}
		c.Next()
	}
}

// authenticate validates the bearer token and loads the profile so reward
// eligibility reflects the current account state rather than the token.
func authenticate(c *gin.Context, svc auth.Service) bool {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
		return false
	}
	ctx := c.Request.Context()
	claims, err := svc.ValidateToken(ctx, strings.TrimSpace(parts[1]))
	if err != nil {
		abortWithAppError(c, err)
		return false
	}
	profile, err := svc.Profile(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUserNotFound) {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeInvalidToken, "account no longer exists", err))
			return false
		}
		abortWithAppError(c, err)
		return false
	}
	setClaims(c, claims)
	setOwner(c, booking.Owner{UserID: profile.ID, RewardUnlocked: profile.RewardUnlocked})
	return true
}
