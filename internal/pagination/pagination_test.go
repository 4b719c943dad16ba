package pagination_test

import (
	"testing"
	"time"

	"sonar/internal/db"
	"sonar/internal/models"
	"sonar/internal/pagination"
	"sonar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
}

func makeUser(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := services.CreateUser(username, "test_pw", "", "")
	require.NoError(t, err)
	return u
}

func makePing(t *testing.T, u *models.User, text string) *models.Ping {
	t.Helper()
	p, err := services.CreatePing(u, text, nil)
	require.NoError(t, err)
	return p
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 30, 0, 123456000, time.UTC)
	token := pagination.Encode(pagination.Cursor{CreatedAt: at, ID: 42})

	cur, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.True(t, cur.CreatedAt.Equal(at))
	assert.EqualValues(t, 42, cur.ID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{"not base64 !!", "bm9jb2xvbg", "YTpi"} {
		_, err := pagination.Decode(token)
		assert.ErrorIs(t, err, pagination.ErrBadCursor, "token %q", token)
	}
}

func TestPageWalkRecoversWholeSet(t *testing.T) {
	setupTestDB(t)
	alice := makeUser(t, "alice")

	p1 := makePing(t, alice, "one")
	p2 := makePing(t, alice, "two")
	p3 := makePing(t, alice, "three")

	page1, next, err := pagination.Pings(services.UserTimeline(alice, nil), "", false, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, p3.ID, page1[0].ID)
	assert.Equal(t, p2.ID, page1[1].ID)

	page2, next2, err := pagination.Pings(services.UserTimeline(alice, nil), *next, false, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Nil(t, next2)
	assert.Equal(t, p1.ID, page2[0].ID)
}

func TestInsertBetweenFetchesDoesNotShiftPages(t *testing.T) {
	setupTestDB(t)
	alice := makeUser(t, "alice")

	makePing(t, alice, "one")
	p2 := makePing(t, alice, "two")
	p3 := makePing(t, alice, "three")

	page1, next, err := pagination.Pings(services.UserTimeline(alice, nil), "", false, 2)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []uint{p3.ID, p2.ID}, []uint{page1[0].ID, page1[1].ID})

	// a newer ping lands between the two page fetches
	latest := makePing(t, alice, "four")

	page2, _, err := pagination.Pings(services.UserTimeline(alice, nil), *next, false, 2)
	require.NoError(t, err)

	seen := map[uint]bool{}
	for _, p := range append(page1, page2...) {
		assert.False(t, seen[p.ID], "no duplicates across pages")
		seen[p.ID] = true
		assert.NotEqual(t, latest.ID, p.ID, "the late insert must not appear retroactively")
	}
	assert.Len(t, seen, 3)
}

func TestAscendingPagination(t *testing.T) {
	setupTestDB(t)
	alice := makeUser(t, "alice")
	root := makePing(t, alice, "root")

	var replies []*models.Ping
	for _, text := range []string{"r1", "r2", "r3"} {
		r, err := services.CreatePing(alice, text, &root.ID)
		require.NoError(t, err)
		replies = append(replies, r)
	}

	page1, next, err := pagination.Pings(services.Replies(root.ID), "", true, 2)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []uint{replies[0].ID, replies[1].ID}, []uint{page1[0].ID, page1[1].ID})

	page2, next2, err := pagination.Pings(services.Replies(root.ID), *next, true, 2)
	require.NoError(t, err)
	assert.Nil(t, next2)
	require.Len(t, page2, 1)
	assert.Equal(t, replies[2].ID, page2[0].ID)
}
