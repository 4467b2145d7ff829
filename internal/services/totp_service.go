package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"dental-backend/internal/auth"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const issuer = "DentalClinic"

type TOTPService struct {
	doctorRepo *repositories.DoctorRepository
}

func NewTOTPService(doctorRepo *repositories.DoctorRepository) *TOTPService {
	return &TOTPService{doctorRepo: doctorRepo}
}

// GenerateSetup creates a new TOTP secret and QR code for a doctor
func (s *TOTPService) GenerateSetup(ctx context.Context, doctor *models.Doctor) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: doctor.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	// Store the secret (not yet enabled)
	if err := s.doctorRepo.SetTOTPSecret(ctx, doctor.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}
	qrBase64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + qrBase64,
		Issuer:      issuer,
		AccountName: doctor.Email,
	}, nil
}

// VerifyAndEnable verifies a TOTP code and enables 2FA for the doctor
func (s *TOTPService) VerifyAndEnable(ctx context.Context, doctorID int, code string) error {
	secret, err := s.doctorRepo.GetTOTPSecret(ctx, doctorID)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrNoTOTPSecret
	}

	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}

	return s.doctorRepo.SetTOTPEnabled(ctx, doctorID, true)
}

// Disable turns off 2FA after verifying the password and a current code.
func (s *TOTPService) Disable(ctx context.Context, doctorID int, password, code string) error {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(doctor.PasswordHash, password) {
		return ErrInvalidPassword
	}
	if !doctor.TOTPEnabled {
		return ErrTOTPNotEnabled
	}

	secret, err := s.doctorRepo.GetTOTPSecret(ctx, doctorID)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}

	if err := s.doctorRepo.SetTOTPEnabled(ctx, doctorID, false); err != nil {
		return err
	}
	return s.doctorRepo.SetTOTPSecret(ctx, doctorID, "")
}

// Custom errors
var (
	ErrNoTOTPSecret    = &TOTPError{Message: "2FA setup not initiated"}
	ErrInvalidTOTPCode = &TOTPError{Message: "invalid verification code"}
	ErrTOTPNotEnabled  = &TOTPError{Message: "2FA is not enabled"}
	ErrInvalidPassword = &TOTPError{Message: "invalid password"}
)

type TOTPError struct {
	Message string
}

func (e *TOTPError) Error() string {
	return e.Message
}
