// Package jwt provides JSON Web Token utilities for the Embermatch API.
//
// The jwt package handles RS256 token signing, verification, and claims
// extraction. In production the API only verifies tokens issued by the
// identity service; signing is used by local tooling and tests.
//
// # Verification
//
//	service, err := jwt.NewService(jwt.Config{
//	    PublicKeyPath: "./keys/public.pem",
//	    Issuer:        "auth.embermatch.app",
//	})
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// # Signing
//
// With a private key configured, tokens can be issued for development
// and testing:
//
//	token, err := service.Sign(jwt.Claims{UserID: "user:abc", Role: "admin"})
//
// # Claims
//
// Standard claims (iss, sub, exp, nbf, iat, jti) plus custom user
// claims (user_id, email, username, role) are supported.
package jwt
