package services

import (
	"testing"

	"sonar/internal/db"
	"sonar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUsernamesUniqueCaseInsensitively(t *testing.T) {
	setupTestDB(t)
	mustUser(t, "Alice")

	_, err := CreateUser("alice", "pw", "", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	setupTestDB(t)
	mustUser(t, "Alice")

	u, err := GetUserByUsername("aLiCe")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)

	_, err = GetUserByUsername("nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateUserRequiresUsernameAndPassword(t *testing.T) {
	setupTestDB(t)

	var vErr *ValidationError
	_, err := CreateUser("", "pw", "", "")
	require.ErrorAs(t, err, &vErr)

	_, err = CreateUser("alice", "", "", "")
	require.ErrorAs(t, err, &vErr)
}

func TestTokenIsStable(t *testing.T) {
	setupTestDB(t)
	alice := mustUser(t, "alice")

	first, err := IssueOrFetchToken(alice)
	require.NoError(t, err)
	require.Len(t, first, 40)

	second, err := IssueOrFetchToken(alice)
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeat calls must not rotate the token")
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB(t)
	alice := mustUser(t, "alice")
	bob := mustUser(t, "bob")

	mustPing(t, alice, "mine #tag mentioning @bob")
	_, err := FollowUser(alice, bob)
	require.NoError(t, err)
	_, err = BlockUser(bob, alice)
	require.NoError(t, err)
	_, err = IssueOrFetchToken(alice)
	require.NoError(t, err)

	require.NoError(t, DeleteUser(alice))

	var pings, follows, blocks, tokens int64
	db.DB.Model(&models.Ping{}).Where("user_id = ?", alice.ID).Count(&pings)
	db.DB.Model(&models.Follow{}).Count(&follows)
	db.DB.Model(&models.Block{}).Count(&blocks)
	db.DB.Model(&models.AuthToken{}).Where("user_id = ?", alice.ID).Count(&tokens)
	assert.Zero(t, pings)
	assert.Zero(t, follows)
	assert.Zero(t, blocks)
	assert.Zero(t, tokens)

	// hashtags are never garbage-collected
	var tag models.Hashtag
	require.NoError(t, db.DB.First(&tag, "name = ?", "tag").Error)
}
