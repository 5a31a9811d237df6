package domain

// SetupToken records a password-setup token issued for an email address.
// PK: email. ExpiresAt is a Unix timestamp used as DynamoDB TTL (24 hours).
//
// The linking workflow does not gate on this record — the client that
// requested the setup email holds and checks the token before calling
// POST /api/setup-password. Persisting it server-side bounds the token's
// lifetime and keeps issuance auditable.
type SetupToken struct {
	Email     string `json:"email" dynamodbav:"email"`
	Token     string `json:"token" dynamodbav:"token"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
