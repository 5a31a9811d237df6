package domain

import "time"

// Auth provider identifiers as they appear in Account.Providers.
const (
	ProviderGoogle   = "google.com"
	ProviderPassword = "password"
)

// Account is an identity record. Email is stored lowercased; lookups go
// through the email-index GSI and are therefore case-sensitive by storage,
// so callers must normalize before querying.
type Account struct {
	AccountID    string    `json:"id" dynamodbav:"account_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	Providers    []string  `json:"providers" dynamodbav:"providers"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	GoogleSub    string    `json:"-" dynamodbav:"google_sub"`
	DisplayName  string    `json:"display_name,omitempty" dynamodbav:"display_name"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// HasProvider reports whether the given auth provider is linked.
func (a *Account) HasProvider(provider string) bool {
	for _, p := range a.Providers {
		if p == provider {
			return true
		}
	}
	return false
}

// Principal is the decoded identity attached to an authenticated request.
type Principal struct {
	AccountID string
	Email     string
}
