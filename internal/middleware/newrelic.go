package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelicAttributes annotates the New Relic transaction started by nrgin with
// the authenticated user and any errors recorded on the context. It also puts
// the transaction on the request context so that datastore segments started
// from c.Request.Context() are attached to it.
// It must be registered after nrgin.Middleware.
func NewRelicAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn == nil {
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(newrelic.NewContext(c.Request.Context(), txn))
		c.Next()

		if route := c.FullPath(); route != "" {
			txn.AddAttribute("http.route", route)
		}
		if userID, ok := UserID(c); ok {
			txn.AddAttribute("user_id", userID)
		}
		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
