package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/horizonit/backend/internal/auth"
)

// Generates a TOTP secret for the admin second factor. The printed secret
// goes into ADMIN_TOTP_SECRET; the QR data URL can be opened in a browser
// and scanned with an authenticator app.
func main() {
	issuer := flag.String("issuer", "Horizon IT", "issuer shown in the authenticator app")
	account := flag.String("account", "admin", "account name shown in the authenticator app")
	flag.Parse()

	secret, url, qrDataURL, err := auth.GenerateTOTPSecret(*issuer, *account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate TOTP secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ADMIN_TOTP_SECRET=%s\n\n", secret)
	fmt.Printf("Provisioning URL:\n%s\n\n", url)
	fmt.Printf("QR code (open in a browser):\n%s\n", qrDataURL)
}
