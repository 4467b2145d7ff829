package middleware

import (
	"context"
	"net/http"
	"strings"

	"dental-backend/internal/auth"
	"dental-backend/internal/repositories"
)

type contextKey string

const DoctorIDKey contextKey = "doctor_id"
const EmailKey contextKey = "email"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	doctorRepo *repositories.DoctorRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, doctorRepo *repositories.DoctorRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		doctorRepo: doctorRepo,
	}
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Check the database for current account status, not the token, so a
		// deactivated doctor loses access immediately.
		doctor, err := m.doctorRepo.Get(r.Context(), claims.DoctorID)
		if err != nil {
			http.Error(w, "Account not found", http.StatusUnauthorized)
			return
		}
		if !doctor.IsActive {
			http.Error(w, "Account suspended", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), DoctorIDKey, doctor.ID)
		ctx = context.WithValue(ctx, EmailKey, doctor.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDoctorIDFromContext extracts the doctor ID from request context
func GetDoctorIDFromContext(ctx context.Context) (int, bool) {
	doctorID, ok := ctx.Value(DoctorIDKey).(int)
	return doctorID, ok
}

// GetEmailFromContext extracts email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
