package services

import (
	"errors"
	"strings"

	"sonar/internal/models"

	"gorm.io/gorm"
)

// UpdateContentRelations recomputes a ping's mention and hashtag sets from
// its current text and replaces the stored associations wholesale. It must
// run in the same transaction as the text write so readers never observe a
// ping whose text and derived relations disagree.
//
// Tokens are whitespace-delimited. "@name" resolves case-insensitively to a
// user; unknown names are silently dropped. "#tag" is lowercased and the
// hashtag row is created on first use. Dispatch on the first character is
// exclusive, so a token is never both.
func UpdateContentRelations(tx *gorm.DB, ping *models.Ping) error {
	var mentions []models.User
	var hashtags []models.Hashtag
	seenUsers := make(map[uint]bool)
	seenTags := make(map[string]bool)

	for _, word := range strings.Fields(ping.Text) {
		switch {
		case strings.HasPrefix(word, "@"):
			var user models.User
			err := tx.Where("LOWER(username) = LOWER(?)", word[1:]).First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !seenUsers[user.ID] {
				seenUsers[user.ID] = true
				mentions = append(mentions, user)
			}
		case strings.HasPrefix(word, "#"):
			name := strings.ToLower(word[1:])
			if name == "" || seenTags[name] {
				continue
			}
			hashtag := models.Hashtag{Name: name}
			if err := tx.FirstOrCreate(&hashtag, models.Hashtag{Name: name}).Error; err != nil {
				return err
			}
			seenTags[name] = true
			hashtags = append(hashtags, hashtag)
		}
	}

	if err := replaceMentions(tx, ping, mentions); err != nil {
		return err
	}
	return replaceHashtags(tx, ping, hashtags)
}

func replaceMentions(tx *gorm.DB, ping *models.Ping, mentions []models.User) error {
	assoc := tx.Model(ping).Association("Mentions")
	if len(mentions) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(mentions)
}

func replaceHashtags(tx *gorm.DB, ping *models.Ping, hashtags []models.Hashtag) error {
	assoc := tx.Model(ping).Association("Hashtags")
	if len(hashtags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(hashtags)
}
