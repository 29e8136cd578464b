package entity

import "time"

// DefaultLanguage is assigned to newly created users.
const DefaultLanguage = "en"

// User is the account document created on first sign-in. Its lifecycle is
// independent from any pantry; after creation only the preferences change.
type User struct {
	ID          string      `firestore:"id" json:"id"`
	Email       string      `firestore:"email" json:"email"`
	DisplayName string      `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	Preferences Preferences `firestore:"preferences" json:"preferences"`
	CreatedAt   time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

// Preferences holds per-user settings.
type Preferences struct {
	Language        string `firestore:"language" json:"language"`
	DefaultPantryID string `firestore:"defaultPantryId,omitempty" json:"defaultPantryId,omitempty"`
}
