package public

import (
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-ID"

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// getCustomerID requires an authenticated customer.
func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id")
}

// optionalCustomerID returns 0 for guests.
func optionalCustomerID(c *gin.Context) uint {
	value, exists := c.Get("customer_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// sessionID identifies a guest checkout session. Authenticated carts
// still carry it so the applied voucher survives login.
func sessionID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(sessionHeader))
	if id == "" {
		if cookie, err := c.Cookie("session_id"); err == nil {
			id = strings.TrimSpace(cookie)
		}
	}
	return id
}

func requireSession(c *gin.Context) (string, bool) {
	id := sessionID(c)
	if id == "" && optionalCustomerID(c) == 0 {
		respondError(c, response.CodeBadRequest, "session id required", nil)
		return "", false
	}
	return id, true
}
