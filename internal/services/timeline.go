package services

import (
	"sonar/internal/db"
	"sonar/internal/models"

	"gorm.io/gorm"
)

// Timeline query builders. Each returns a gorm query over pings for one
// scope; callers hand the result to pagination.Pings. Blocking is a
// feed-level filter applied here, never an access-control check: a blocked
// author's individual pings stay fetchable by id.

// unblockedFor excludes pings whose author has a block edge with the viewer
// in either direction. Unblocking one direction while the reverse edge
// remains keeps both parties hidden; only a fully clear edge set restores
// visibility.
func unblockedFor(q *gorm.DB, viewerID uint) *gorm.DB {
	blockers := db.DB.Model(&models.Block{}).Select("blocker_id").Where("blocked_id = ?", viewerID)
	blocked := db.DB.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ?", viewerID)
	return q.
		Where("pings.user_id NOT IN (?)", blockers).
		Where("pings.user_id NOT IN (?)", blocked)
}

// HomeTimeline is the viewer's global feed: their own pings plus pings by
// everyone they follow, block-filtered.
func HomeTimeline(viewer *models.User) *gorm.DB {
	follows := db.DB.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", viewer.ID)
	q := db.DB.Model(&models.Ping{}).Preload("User").
		Where("pings.user_id = ? OR pings.user_id IN (?)", viewer.ID, follows)
	return unblockedFor(q, viewer.ID)
}

// UserTimeline is every ping authored by u. The block filter applies only
// when there is a viewer context; the bare URL fetch is unfiltered.
func UserTimeline(u *models.User, viewer *models.User) *gorm.DB {
	q := db.DB.Model(&models.Ping{}).Preload("User").Where("pings.user_id = ?", u.ID)
	if viewer != nil {
		q = unblockedFor(q, viewer.ID)
	}
	return q
}

// HashtagTimeline is every ping carrying the (lowercased) tag,
// block-filtered when a viewer context exists.
func HashtagTimeline(name string, viewer *models.User) *gorm.DB {
	q := db.DB.Model(&models.Ping{}).Preload("User").
		Joins("JOIN ping_hashtags ON ping_hashtags.ping_id = pings.id").
		Where("ping_hashtags.hashtag_name = ?", name)
	if viewer != nil {
		q = unblockedFor(q, viewer.ID)
	}
	return q
}

// MentionsTimeline is every ping mentioning the viewer, block-filtered.
func MentionsTimeline(viewer *models.User) *gorm.DB {
	q := db.DB.Model(&models.Ping{}).Preload("User").
		Joins("JOIN ping_mentions ON ping_mentions.ping_id = pings.id").
		Where("ping_mentions.user_id = ?", viewer.ID)
	return unblockedFor(q, viewer.ID)
}

// Replies lists the direct children of a ping, one level only. Callers
// paginate this ascending so conversations read oldest first.
func Replies(pingID uint) *gorm.DB {
	return db.DB.Model(&models.Ping{}).Preload("User").
		Where("pings.replying_to_id = ?", pingID)
}
