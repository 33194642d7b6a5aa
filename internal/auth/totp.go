package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// The admin login optionally carries a TOTP second factor. The shared secret
// comes straight from the environment (ADMIN_TOTP_SECRET); there is no
// per-user enrollment since there is a single admin credential.

// ValidateTOTP checks a 6-digit code against the configured secret.
// Allows ±1 time step for clock drift.
func ValidateTOTP(secret, code string) (bool, error) {
	valid, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to validate TOTP: %w", err)
	}
	return valid, nil
}

// GenerateTOTPSecret creates a fresh secret plus its provisioning URL and a
// QR code PNG data URL for enrolling an authenticator app.
func GenerateTOTPSecret(issuer, accountName string) (secret, url, qrDataURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		SecretSize:  32,
		Period:      30,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	qr, err := qrcode.New(key.URL(), qrcode.Highest)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(200)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	qrDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return key.Secret(), key.URL(), qrDataURL, nil
}
