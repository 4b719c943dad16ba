package models

import (
	"time"
)

type Ping struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	// Nullable parent id only, no live parent pointer: the reply tree is
	// traversed via indexed queries (replies of a given id), and a reply
	// survives its parent's deletion as an orphaned root.
	ReplyingToID *uint     `gorm:"index" json:"replying_to"`
	Text         string    `gorm:"size:280;not null" json:"text"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	// Derived from Text on every save; always exactly the token-derived sets.
	Mentions []User    `gorm:"many2many:ping_mentions;constraint:OnDelete:CASCADE;" json:"-"`
	Hashtags []Hashtag `gorm:"many2many:ping_hashtags;constraint:OnDelete:CASCADE;" json:"-"`
}

// EditedSeconds reports how many whole seconds after creation the ping was
// last edited, or nil when it was never edited. Edits within 15 seconds of
// creation report as not edited; this absorbs clock skew in
// create-then-immediately-edit flows and is deliberately not configurable.
func (p *Ping) EditedSeconds() *int64 {
	elapsed := int64(p.UpdatedAt.Sub(p.CreatedAt) / time.Second)
	if elapsed < 15 {
		return nil
	}
	return &elapsed
}

// Hashtag rows are created lazily on first use and never deleted, so a tag
// can exist with zero associated pings.
type Hashtag struct {
	Name      string    `gorm:"primaryKey;size:280" json:"name"` // lowercased, without the leading '#'
	CreatedAt time.Time `json:"created_at"`

	InPings []Ping `gorm:"many2many:ping_hashtags;" json:"-"`
}
