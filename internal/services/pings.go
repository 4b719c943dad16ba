package services

import (
	"fmt"

	"sonar/internal/config"
	"sonar/internal/db"
	"sonar/internal/models"

	"gorm.io/gorm"
)

func validatePingText(text string) error {
	if text == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if max := config.PingLength(); len(text) > max {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("must not exceed %d bytes", max)}
	}
	return nil
}

// CreatePing validates, extracts content relations and persists, all in one
// transaction.
func CreatePing(user *models.User, text string, replyingToID *uint) (*models.Ping, error) {
	if err := validatePingText(text); err != nil {
		return nil, err
	}

	ping := &models.Ping{
		UserID:       user.ID,
		Text:         text,
		ReplyingToID: replyingToID,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ping).Error; err != nil {
			return err
		}
		return UpdateContentRelations(tx, ping)
	})
	if err != nil {
		return nil, err
	}

	ping.User = *user
	return ping, nil
}

// EditPing updates the text and reruns extraction. Only the owner may edit.
func EditPing(user *models.User, ping *models.Ping, text string) error {
	if ping.UserID != user.ID {
		return ErrNotOwner
	}
	if err := validatePingText(text); err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		// Update (not UpdateColumn) so gorm bumps UpdatedAt, which drives
		// the edited-seconds surfacing.
		if err := tx.Model(ping).Update("text", text).Error; err != nil {
			return err
		}
		ping.Text = text
		return UpdateContentRelations(tx, ping)
	})
}

// DeletePing removes a ping. Replies keep a null parent reference instead of
// cascading; hashtag rows are never garbage-collected.
func DeletePing(user *models.User, ping *models.Ping) error {
	if ping.UserID != user.ID {
		return ErrNotOwner
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		// UpdateColumn so orphaning a reply does not mark it as edited.
		err := tx.Model(&models.Ping{}).
			Where("replying_to_id = ?", ping.ID).
			UpdateColumn("replying_to_id", nil).Error
		if err != nil {
			return err
		}
		if err := tx.Model(ping).Association("Mentions").Clear(); err != nil {
			return err
		}
		if err := tx.Model(ping).Association("Hashtags").Clear(); err != nil {
			return err
		}
		return tx.Delete(ping).Error
	})
}

// GetPing loads a ping with its author. Returns gorm.ErrRecordNotFound when
// absent.
func GetPing(id uint) (*models.Ping, error) {
	var ping models.Ping
	if err := db.DB.Preload("User").First(&ping, id).Error; err != nil {
		return nil, err
	}
	return &ping, nil
}
