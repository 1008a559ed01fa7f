package auth

import "memoria/internal/domain/models"

// JWTVerifier validates bearer tokens. The middleware depends on this
// interface only, so tests can swap in a fake verifier.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired or badly signed.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases resources held by the verifier
	Close() error
}
