package domain

import "time"

// UserProfile is the document stored per account. ID equals the account id
// of the owner. Known fields are explicit; anything the client sends outside
// the allow-list lands in Extra instead of merging into the top level.
type UserProfile struct {
	ID          string                 `json:"id" dynamodbav:"id"`
	DisplayName string                 `json:"display_name,omitempty" dynamodbav:"display_name"`
	PhotoURL    string                 `json:"photo_url,omitempty" dynamodbav:"photo_url"`
	University  string                 `json:"university,omitempty" dynamodbav:"university"`
	Major       string                 `json:"major,omitempty" dynamodbav:"major"`
	Year        int                    `json:"year,omitempty" dynamodbav:"year"`
	Bio         string                 `json:"bio,omitempty" dynamodbav:"bio"`
	Extra       map[string]interface{} `json:"extra,omitempty" dynamodbav:"extra"`
	CreatedAt   time.Time              `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" dynamodbav:"updated_at"`
}

// profileFields is the allow-list of client-settable top-level profile attributes.
var profileFields = map[string]struct{}{
	"display_name": {},
	"photo_url":    {},
	"university":   {},
	"major":        {},
	"year":         {},
	"bio":          {},
}

// SplitProfileFields partitions a raw request body into allow-listed
// top-level fields and the opaque extension map. Reserved attributes
// (id, created_at, updated_at) are dropped so clients cannot overwrite them.
func SplitProfileFields(body map[string]interface{}) (known, extra map[string]interface{}) {
	known = make(map[string]interface{})
	extra = make(map[string]interface{})
	for k, v := range body {
		switch k {
		case "id", "created_at", "updated_at", "extra":
			continue
		}
		if _, ok := profileFields[k]; ok {
			known[k] = v
		} else {
			extra[k] = v
		}
	}
	return known, extra
}
