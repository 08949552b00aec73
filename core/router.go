package core

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, auth AuthService, issuer *TokenIssuer, store UserStore, limiter *LoginLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	// Unexpected faults must not crash the process or leak internals.
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}))
	r.Use(RequestIDMiddleware())
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(OriginMiddleware(cfg))
	}

	ledger := NewLedgerService(store)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		ctx := c.Request.Context()
		if limiter.Blocked(ctx, req.Username) {
			respondError(c, http.StatusTooManyRequests, "Too many login attempts")
			return
		}

		identity, err := auth.Authenticate(req.Username, req.Password)
		if err != nil {
			// Unknown username and wrong password answer identically.
			limiter.RecordFailure(ctx, req.Username)
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		limiter.Reset(ctx, req.Username)

		token, err := issuer.Issue(identity.Username)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	api := r.Group("/api")
	api.Use(RequireAuth(issuer))
	{
		api.GET("/account", func(c *gin.Context) {
			view, err := ledger.Account(c.Request.Context(), c.GetString(contextUserKey))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "Account not found")
					return
				}
				respondError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			c.JSON(http.StatusOK, view)
		})

		api.POST("/account/withdraw", func(c *gin.Context) {
			// Amount binds as any so a string or missing value is reportable
			// as "not a number" rather than a generic binding failure.
			var req struct {
				Amount any `json:"amount"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "Amount must be a number")
				return
			}
			amount, ok := req.Amount.(float64)
			if !ok {
				respondError(c, http.StatusBadRequest, "Amount must be a number")
				return
			}

			res, err := ledger.Withdraw(c.Request.Context(), c.GetString(contextUserKey), amount)
			if err != nil {
				switch {
				case errors.Is(err, ErrNotANumber):
					respondError(c, http.StatusBadRequest, "Amount must be a number")
				case errors.Is(err, ErrInvalidAmount):
					respondError(c, http.StatusBadRequest, "Amount must be a positive number")
				case errors.Is(err, ErrNotFound):
					respondError(c, http.StatusNotFound, "Account not found")
				case errors.Is(err, ErrInsufficientFunds):
					respondError(c, http.StatusBadRequest, "Insufficient funds")
				default:
					respondError(c, http.StatusInternalServerError, "Internal server error")
				}
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message":        "Withdrawal successful",
				"balance":        res.Balance,
				"lastWithdrawal": res.LastWithdrawal,
			})
		})

		api.GET("/account/interest", func(c *gin.Context) {
			view, err := ledger.Interest(c.Request.Context(), c.GetString(contextUserKey))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "Account not found")
					return
				}
				respondError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			c.JSON(http.StatusOK, view)
		})
	}

	return r
}
