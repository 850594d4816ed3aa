package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/embermatch/api/pkg/jwt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	userID := flag.String("user", "dev-user", "User ID for the token")
	email := flag.String("email", "dev@embermatch.app", "Email for the token")
	role := flag.String("role", jwt.RoleUser, "Role claim (user or admin)")
	issuer := flag.String("issuer", "auth.embermatch.app", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	generate := flag.Bool("generate", false, "Generate a new RSA key pair next to -key, then exit")

	flag.Parse()

	if *role != jwt.RoleUser && *role != jwt.RoleAdmin {
		fmt.Fprintf(os.Stderr, "Error: -role must be %q or %q\n", jwt.RoleUser, jwt.RoleAdmin)
		os.Exit(1)
	}

	publicKeyPath := strings.TrimSuffix(*privateKeyPath, "private.pem") + "public.pem"

	if *generate {
		if err := jwt.GenerateKeyPair(*privateKeyPath, publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, publicKeyPath)
		return
	}

	// Create JWT service with just the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate a local key pair first: dev-token -generate\n")
		os.Exit(1)
	}

	claims := jwt.Claims{
		UserID:   *userID,
		Email:    *email,
		Username: "Dev",
		Role:     *role,
	}

	// Sign token
	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"email":        *email,
			"role":         *role,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Dev Token Generated")
		fmt.Println("===================")
		fmt.Printf("User ID:  %s\n", *userID)
		fmt.Printf("Email:    %s\n", *email)
		fmt.Printf("Role:     %s\n", *role)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/questions/next\n", token[:50]+"...")
	}
}
