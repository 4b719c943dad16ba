package models

import (
	"time"
)

// Follow is a directed subscription edge: follower sees followed's pings
// in their home timeline. One edge per ordered pair.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followed" json:"follower_id"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followed" json:"followed_id"`
	Followed   User      `gorm:"foreignKey:FollowedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Block is directed in storage but symmetric in effect: an edge in either
// direction hides both authors from each other's filtered feeds.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;index;uniqueIndex:idx_blocker_blocked" json:"blocker_id"`
	Blocker   User      `gorm:"foreignKey:BlockerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BlockedID uint      `gorm:"not null;index;uniqueIndex:idx_blocker_blocked" json:"blocked_id"`
	Blocked   User      `gorm:"foreignKey:BlockedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
