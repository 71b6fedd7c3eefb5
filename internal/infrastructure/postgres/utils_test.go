package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
}

func TestWhere_Build(t *testing.T) {
	w := newWhere("user-1")
	w.eqIf("status", "")
	w.eqIf("song_id", "song-9")
	w.search("  blue  ", "title", "artist")
	page := w.page(20, 40)

	assert.Equal(t, ` WHERE user_id = $1 AND song_id = $2 AND (title ILIKE $3 ESCAPE '\' OR artist ILIKE $3 ESCAPE '\')`, w.String())
	assert.Equal(t, " LIMIT $4 OFFSET $5", page)
	assert.Equal(t, []interface{}{"user-1", "song-9", "%blue%", 20, 40}, w.args)
}

func TestWhere_NoLimit(t *testing.T) {
	w := newWhere("user-1")
	w.search("   ", "title")
	assert.Equal(t, "", w.page(0, 0))
	assert.Equal(t, " WHERE user_id = $1", w.String())
	assert.Len(t, w.args, 1)
}

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}
