package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/cors"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
)

// CORS builds the CORS middleware from configuration. Disabled config
// yields a pass-through.
func CORS(conf *config.Config) func(http.Handler) http.Handler {
	if !conf.App.CORS.Enable {
		return passthrough
	}

	return cors.Handler(cors.Options{
		AllowCredentials: conf.App.CORS.AllowCredentials,
		AllowedHeaders:   conf.App.CORS.AllowedHeaders,
		AllowedMethods:   conf.App.CORS.AllowedMethods,
		AllowedOrigins:   conf.App.CORS.AllowedOrigins,
		MaxAge:           conf.App.CORS.MaxAgeSeconds,
	})
}

// Tracing opens a span per request, named after method and path pattern.
func Tracing(otl otel.Otel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, scope := otl.NewScope(r.Context(), constant.OtelHandlerScopeName, r.Method+" "+r.URL.Path)
			defer scope.End()

			scope.SetAttribute("http.method", r.Method)
			scope.SetAttribute("http.target", r.URL.Path)
			scope.SetAttribute("http.user_agent", r.Header.Get(constant.RequestHeaderUserAgent))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit enforces a fixed-window request limit per client (IP plus user
// agent). Counters live in the shared redis cache with the window as TTL,
// so every replica enforces the same budget. A failing cache lets requests
// through rather than blocking traffic.
func RateLimit(conf *config.Config, redisCache cache.RedisCache) func(http.Handler) http.Handler {
	if !conf.App.RateLimiter.Enable {
		return passthrough
	}

	maxRequests := conf.App.RateLimiter.MaxRequests
	windowSeconds := conf.App.RateLimiter.WindowSeconds

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			var count int

			err := redisCache.Get(r.Context(), cacheKey, &count)
			if err != nil {
				if !errors.Is(err, cache.CacheNil) {
					next.ServeHTTP(w, r)

					return
				}

				count = 1
			} else {
				count++
			}

			if count > maxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = redisCache.Save(r.Context(), cacheKey, count, windowSeconds); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		if commaIdx := strings.Index(forwarded, ","); commaIdx > 0 {
			return strings.TrimSpace(forwarded[:commaIdx])
		}

		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get(constant.RequestHeaderRealIP); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func passthrough(next http.Handler) http.Handler {
	return next
}
