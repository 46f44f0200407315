package store

import (
	"time"

	"gorm.io/datatypes"
)

// QuoteList is the unit of ownership and sharing for quotes attributed to
// one person. Collaborators is a set of user ids; it always contains at
// least the creator when the list is written.
type QuoteList struct {
	ID            string                      `gorm:"primaryKey;type:uuid" json:"id"`
	PersonName    string                      `gorm:"not null" json:"person_name"`
	Collaborators datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"collaborators"`
	CreatedBy     string                      `gorm:"index;not null" json:"created_by"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// TableName specifies the table name for QuoteList
func (QuoteList) TableName() string {
	return "quote_lists"
}

// HasCollaborator reports whether userID is a member of the list.
func (l *QuoteList) HasCollaborator(userID string) bool {
	for _, id := range l.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}

// Quote is a single quotation attached to a list. PersonAlias is a
// denormalized snapshot of the display name typed at creation time; later
// alias edits never change stored quotes. Immutable except for ListID,
// which only a merge rewrites.
type Quote struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Text        string    `gorm:"not null" json:"text"`
	PersonAlias string    `gorm:"not null" json:"person_alias"`
	ListID      string    `gorm:"index;not null" json:"list_id"`
	CreatedBy   string    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// ListAlias is a per-(user, list) display-name override, independent of the
// list's canonical PersonName and of other collaborators' aliases.
type ListAlias struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	ListID    string    `gorm:"primaryKey;type:uuid" json:"list_id"`
	Alias     string    `gorm:"not null" json:"alias"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ListAlias
func (ListAlias) TableName() string {
	return "list_aliases"
}

// Invite is a bearer token granting collaborator access to a list upon
// redemption. ListName snapshots the list's PersonName at issuance.
type Invite struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ListID    string    `gorm:"index;not null" json:"list_id"`
	ListName  string    `gorm:"not null" json:"list_name"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Invite
func (Invite) TableName() string {
	return "invites"
}
