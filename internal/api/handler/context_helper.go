package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/service"
	"github.com/cmms120187/pratamair/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. When the JWT
// middleware did not inject it, a 401 is written and ok is false; the
// caller should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetTokenInfo extracts the token's JTI and expiry from the context.
func MustGetTokenInfo(c *gin.Context) (string, time.Time, bool) {
	jti, exists := c.Get("jti")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", time.Time{}, false
	}
	expiresAt, exists := c.Get("token_expires_at")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", time.Time{}, false
	}
	jtiStr, ok1 := jti.(string)
	expiry, ok2 := expiresAt.(time.Time)
	if !ok1 || !ok2 {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", time.Time{}, false
	}
	return jtiStr, expiry, true
}

// bindPeriod resolves the reporting period from query parameters,
// defaulting to the current month.
func bindPeriod(c *gin.Context) (service.Period, bool) {
	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "invalid period parameters")
		return service.Period{}, false
	}

	now := time.Now()
	if query.Year == 0 {
		query.Year = now.Year()
	}
	if query.Month == 0 {
		query.Month = int(now.Month())
	}

	switch query.Type {
	case service.PeriodYear:
		return service.YearPeriod(query.Year), true
	case service.PeriodMonth, "":
		if query.Month < 1 || query.Month > 12 {
			response.BadRequest(c, 10001, "month must be between 1 and 12")
			return service.Period{}, false
		}
		return service.MonthPeriod(query.Year, time.Month(query.Month)), true
	default:
		response.BadRequest(c, 10001, "period_type must be month or year")
		return service.Period{}, false
	}
}
