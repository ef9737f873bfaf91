package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
)

const totpIssuer = "PharmaConnect"

type TOTPService struct {
	userRepo *repositories.UserRepository
}

func NewTOTPService(userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{userRepo: userRepo}
}

// GenerateSetup creates a new TOTP secret and QR code for a user. The
// secret is stored but 2FA stays disabled until VerifyAndEnable.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.FromPg("get user", "utilisateur", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, apperrors.Persistence("generate totp key", err)
	}

	if err := s.userRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, apperrors.FromPg("store totp secret", "utilisateur", err)
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, apperrors.Persistence("render totp qr", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, apperrors.Persistence("encode totp qr", err)
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable checks a setup code and turns 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return apperrors.FromPg("get user", "utilisateur", err)
	}
	if user.TOTPSecret == "" {
		return apperrors.Validation("la configuration 2FA n'a pas été initiée")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return apperrors.Auth("code de vérification invalide")
	}
	if err := s.userRepo.EnableTOTP(ctx, userID); err != nil {
		return apperrors.FromPg("enable totp", "utilisateur", err)
	}
	return nil
}

// Verify validates a TOTP code during login.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return apperrors.FromPg("get user", "utilisateur", err)
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return apperrors.Validation("2FA n'est pas activée pour ce compte")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return apperrors.Auth("code de vérification invalide")
	}
	return nil
}

// Disable turns 2FA off after re-checking the password and a valid code.
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return apperrors.FromPg("get user", "utilisateur", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return apperrors.Auth("mot de passe incorrect")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return apperrors.Auth("code de vérification invalide")
	}
	if err := s.userRepo.DisableTOTP(ctx, userID); err != nil {
		return apperrors.FromPg("disable totp", "utilisateur", err)
	}
	return nil
}
