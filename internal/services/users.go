package services

import (
	"errors"

	"sonar/internal/db"
	"sonar/internal/models"
	"sonar/internal/utils"

	"gorm.io/gorm"
)

// GetUserByUsername resolves a username case-insensitively. Returns
// gorm.ErrRecordNotFound when no such user exists.
func GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new identity. Usernames are unique
// case-insensitively: the pre-check here gives a clean error, the
// LOWER(username) unique index catches the concurrent-registration race.
func CreateUser(username, password, email, blurb string) (*models.User, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	if _, err := GetUserByUsername(username); err == nil {
		return nil, &ValidationError{Field: "username", Reason: "already taken"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Blurb:    blurb,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the mutable profile fields. The username is
// immutable after creation; callers simply never pass one here.
func UpdateProfile(user *models.User, email, blurb, password *string) error {
	updates := map[string]interface{}{}
	if email != nil {
		updates["email"] = *email
	}
	if blurb != nil {
		updates["blurb"] = *blurb
	}
	if password != nil {
		if *password == "" {
			return &ValidationError{Field: "password", Reason: "must not be empty"}
		}
		hash, err := utils.HashPassword(*password)
		if err != nil {
			return err
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		return nil
	}
	return db.DB.Model(user).Updates(updates).Error
}

// DeleteUser removes the identity; pings, edges and the token cascade.
func DeleteUser(user *models.User) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		// Clear derived relations of the user's pings first so the
		// many2many join rows do not linger.
		var pings []models.Ping
		if err := tx.Where("user_id = ?", user.ID).Find(&pings).Error; err != nil {
			return err
		}
		for i := range pings {
			if err := tx.Model(&pings[i]).Association("Mentions").Clear(); err != nil {
				return err
			}
			if err := tx.Model(&pings[i]).Association("Hashtags").Clear(); err != nil {
				return err
			}
			err := tx.Model(&models.Ping{}).
				Where("replying_to_id = ?", pings[i].ID).
				UpdateColumn("replying_to_id", nil).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Ping{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blocker_id = ? OR blocked_id = ?", user.ID, user.ID).Delete(&models.Block{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		// Join rows in ping_mentions pointing at this user as the mentioned party.
		if err := tx.Exec("DELETE FROM ping_mentions WHERE user_id = ?", user.ID).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// IssueOrFetchToken returns the user's API token, creating it on first use.
// Tokens are not rotated by repeat calls.
func IssueOrFetchToken(user *models.User) (string, error) {
	var token models.AuthToken
	err := db.DB.Where("user_id = ?", user.ID).First(&token).Error
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	token = models.AuthToken{
		Key:    utils.GenerateTokenKey(),
		UserID: user.ID,
	}
	if err := db.DB.Create(&token).Error; err != nil {
		return "", err
	}
	return token.Key, nil
}
