package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"dental-backend/internal/auth"
	"dental-backend/internal/cache"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrTOTPRequired       = errors.New("verification code required")
)

type AuthService struct {
	doctorRepo   *repositories.DoctorRepository
	loginLogRepo *repositories.LoginLogRepository
	jwtManager   *auth.JWTManager
}

func NewAuthService(doctorRepo *repositories.DoctorRepository, loginLogRepo *repositories.LoginLogRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		doctorRepo:   doctorRepo,
		loginLogRepo: loginLogRepo,
		jwtManager:   jwtManager,
	}
}

// Signup registers a new doctor account and returns a session token.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := s.doctorRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(doctor)
	if err != nil {
		return nil, err
	}

	log.Printf("[Auth] New doctor registered: %s", email)
	return &models.AuthResponse{Token: token, Doctor: doctor}, nil
}

// Login authenticates a doctor. When 2FA is enabled, the TOTP code must be
// supplied with the credentials.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	doctor, err := s.doctorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !doctor.IsActive {
		return nil, errors.New("account is suspended")
	}

	// The credential cache spares a bcrypt compare on repeated logins.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || int(cachedID) != doctor.ID {
		if !auth.VerifyPassword(doctor.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password, int64(doctor.ID))
	}

	if doctor.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		secret, err := s.doctorRepo.GetTOTPSecret(ctx, doctor.ID)
		if err != nil {
			return nil, err
		}
		if !totp.Validate(req.TOTPCode, secret) {
			return nil, ErrInvalidTOTPCode
		}
	}

	token, err := s.jwtManager.GenerateToken(doctor)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed audit write must not block the login.
	logEntry := &models.LoginLog{
		DoctorID:  doctor.ID,
		LoginTime: timeutil.Now(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.loginLogRepo.Record(ctx, logEntry); err != nil {
		log.Printf("[Auth] Failed to record login for doctor %d: %v", doctor.ID, err)
	}

	return &models.AuthResponse{Token: token, Doctor: doctor}, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, doctorID int, current, next string) error {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(doctor.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	if len(next) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	doctor.PasswordHash = hash
	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return err
	}
	cache.InvalidateAuth(ctx, doctor.Email, current)
	return nil
}

// SetAlertEmail stores the address inventory alerts are mailed to. An empty
// address disables them.
func (s *AuthService) SetAlertEmail(ctx context.Context, doctorID int, alertEmail string) error {
	return s.doctorRepo.SetAlertEmail(ctx, doctorID, strings.TrimSpace(alertEmail))
}

// RecentLogins returns the doctor's latest sign-ins.
func (s *AuthService) RecentLogins(ctx context.Context, doctorID, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.loginLogRepo.Recent(ctx, doctorID, limit)
}
