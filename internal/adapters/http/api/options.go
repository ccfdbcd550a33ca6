package api

import (
	"golang.org/x/time/rate"

	"github.com/okian/lmi/pkg/logger"
)

const defaultMaxBody = 1 << 20

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit enables a token bucket shared by every route.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithMaxBodyBytes caps the size of POST bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
