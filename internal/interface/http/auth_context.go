package http

import (
	"github.com/gin-gonic/gin"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/internal/domain/booking"
)

const (
	authClaimsKey = "auth_claims"
	ownerKey      = "booking_owner"
)

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

func setOwner(c *gin.Context, owner booking.Owner) {
	c.Set(ownerKey, owner)
}

// getOwner falls back to a guest when no middleware resolved the caller.
func getOwner(c *gin.Context) booking.Owner {
	value, ok := c.Get(ownerKey)
	if !ok {
		return booking.Owner{}
	}
	owner, _ := value.(booking.Owner)
	return owner
}
