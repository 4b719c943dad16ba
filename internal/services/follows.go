package services

import (
	"sonar/internal/db"
	"sonar/internal/models"
	"sonar/internal/pagination"
)

// FollowUser creates the follow edge if it does not exist. The created flag
// drives 201-vs-200 at the HTTP boundary; re-following is not an error.
func FollowUser(follower, followed *models.User) (created bool, err error) {
	if follower.ID == followed.ID {
		return false, &ValidationError{Field: "followed", Reason: "cannot follow yourself"}
	}

	follow := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	res := db.DB.
		Where(models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}).
		FirstOrCreate(&follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UnfollowUser deletes the edge if present; unfollowing someone you never
// followed is a no-op, not an error.
func UnfollowUser(follower, followed *models.User) error {
	if follower.ID == followed.ID {
		return &ValidationError{Field: "followed", Reason: "cannot unfollow yourself"}
	}
	return db.DB.
		Where("follower_id = ? AND followed_id = ?", follower.ID, followed.ID).
		Delete(&models.Follow{}).Error
}

// BlockUser mirrors FollowUser. Self-blocking is rejected for symmetry with
// self-following.
func BlockUser(blocker, blocked *models.User) (created bool, err error) {
	if blocker.ID == blocked.ID {
		return false, &ValidationError{Field: "blocked", Reason: "cannot block yourself"}
	}

	block := models.Block{BlockerID: blocker.ID, BlockedID: blocked.ID}
	res := db.DB.
		Where(models.Block{BlockerID: blocker.ID, BlockedID: blocked.ID}).
		FirstOrCreate(&block)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func UnblockUser(blocker, blocked *models.User) error {
	if blocker.ID == blocked.ID {
		return &ValidationError{Field: "blocked", Reason: "cannot unblock yourself"}
	}
	return db.DB.
		Where("blocker_id = ? AND blocked_id = ?", blocker.ID, blocked.ID).
		Delete(&models.Block{}).Error
}

// IsBlockedEitherDirection reports whether a block edge exists between the
// two users in either direction. Blocking is stored one-way but hides both
// parties from each other.
func IsBlockedEitherDirection(a, b uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// FollowStats returns how many users u follows and is followed by.
func FollowStats(u *models.User) (following int64, followed int64, err error) {
	err = db.DB.Model(&models.Follow{}).Where("follower_id = ?", u.ID).Count(&following).Error
	if err != nil {
		return 0, 0, err
	}
	err = db.DB.Model(&models.Follow{}).Where("followed_id = ?", u.ID).Count(&followed).Error
	return following, followed, err
}

// FollowingPage returns one page of the users u follows, newest edge first.
func FollowingPage(u *models.User, cursor string, size int) ([]models.User, *string, error) {
	return followEdgePage(u, cursor, size, "follower_id", "Followed")
}

// FollowersPage returns one page of the users following u, newest edge first.
func FollowersPage(u *models.User, cursor string, size int) ([]models.User, *string, error) {
	return followEdgePage(u, cursor, size, "followed_id", "Follower")
}

// followEdgePage pages over the follows table by (created_at, id) keyset and
// projects the user on the far side of each edge.
func followEdgePage(u *models.User, cursor string, size int, ownColumn, farSide string) ([]models.User, *string, error) {
	q := db.DB.Model(&models.Follow{}).
		Preload(farSide).
		Where(ownColumn+" = ?", u.ID).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(size + 1)

	if cursor != "" {
		cur, err := pagination.Decode(cursor)
		if err != nil {
			return nil, nil, err
		}
		q = q.Where("(follows.created_at, follows.id) < (?, ?)", cur.CreatedAt, cur.ID)
	}

	var edges []models.Follow
	if err := q.Find(&edges).Error; err != nil {
		return nil, nil, err
	}

	var next *string
	if len(edges) > size {
		edges = edges[:size]
		last := edges[len(edges)-1]
		s := pagination.Encode(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		next = &s
	}

	users := make([]models.User, len(edges))
	for i, edge := range edges {
		if farSide == "Followed" {
			users[i] = edge.Followed
		} else {
			users[i] = edge.Follower
		}
	}
	return users, next, nil
}
