package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	limiter *limiter.Limiter
}

// NewRateLimiter builds an in-memory per-IP limiter allowing ratePerMinute
// requests each minute.
func NewRateLimiter(ratePerMinute int64) *RateLimiter {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  ratePerMinute,
	}
	store := memory.NewStore()
	return &RateLimiter{limiter: limiter.New(store, rate)}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.GetIP(r, limiter.Options{TrustForwardHeader: true})
		limiterCtx, err := rl.limiter.Get(r.Context(), ip.String())
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if limiterCtx.Reached {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "rate limit exceeded",
				"code":  "rate_limited",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
