// Package pagination implements opaque keyset cursors over (created_at, id).
//
// The cursor encodes the ordering key of the last row returned, not an
// offset, so concurrent inserts and deletes elsewhere in the set never shift
// already-issued pages. Ties on created_at are broken by id, which is
// strictly monotonic, making iteration a reproducible total order.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sonar/internal/models"

	"gorm.io/gorm"
)

// ErrBadCursor is returned for cursors that did not come from Encode.
// Handlers translate it to 400.
var ErrBadCursor = errors.New("malformed pagination cursor")

// Cursor is the position of the last row of a page in (created_at, id) order.
type Cursor struct {
	CreatedAt time.Time
	ID        uint
}

// Encode serializes the cursor into an opaque URL-safe token.
func Encode(c Cursor) string {
	raw := fmt.Sprintf("%d:%d", c.CreatedAt.UnixNano(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode.
func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrBadCursor
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return Cursor{}, ErrBadCursor
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, ErrBadCursor
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, ErrBadCursor
	}
	return Cursor{CreatedAt: time.Unix(0, nanos), ID: uint(id)}, nil
}

// Pings runs a ping query as one fixed-size page. The query's own ordering
// is ignored; ordering here is created_at with id as tie-breaker, descending
// unless ascending is set (reply listings read oldest first). A non-nil next
// token means another page exists.
func Pings(q *gorm.DB, cursorToken string, ascending bool, size int) ([]models.Ping, *string, error) {
	order := "pings.created_at DESC, pings.id DESC"
	cmp := "<"
	if ascending {
		order = "pings.created_at ASC, pings.id ASC"
		cmp = ">"
	}

	if cursorToken != "" {
		cur, err := Decode(cursorToken)
		if err != nil {
			return nil, nil, err
		}
		q = q.Where(fmt.Sprintf("(pings.created_at, pings.id) %s (?, ?)", cmp), cur.CreatedAt, cur.ID)
	}

	var pings []models.Ping
	if err := q.Order(order).Limit(size + 1).Find(&pings).Error; err != nil {
		return nil, nil, err
	}

	var next *string
	if len(pings) > size {
		pings = pings[:size]
		last := pings[len(pings)-1]
		token := Encode(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		next = &token
	}
	return pings, next, nil
}
