package domain

// TokenKind distinguishes the two session token flavors. The kind rides
// inside the signed payload, so it cannot be flipped without breaking the
// signature.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// ActionPurpose labels single-use capability tokens sent over email.
type ActionPurpose string

const (
	PurposeVerifyEmail   ActionPurpose = "verify_email"
	PurposePasswordReset ActionPurpose = "password_reset"
)
