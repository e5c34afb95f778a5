package sqlitegen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlitegen"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := sqlitegen.NewNotFoundError("cat")
		assert.Equal(t, "sqlitegen: cat not found", err.Error())
	})

	t.Run("ErrorWithKey", func(t *testing.T) {
		err := sqlitegen.NewNotFoundErrorWithKey("cat", int64(7))
		assert.Equal(t, "sqlitegen: cat not found (key=7)", err.Error())
		assert.Equal(t, int64(7), err.Key())
		assert.Equal(t, "cat", err.Label())
	})

	t.Run("Is", func(t *testing.T) {
		err := sqlitegen.NewNotFoundError("dog")
		assert.True(t, errors.Is(err, sqlitegen.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := sqlitegen.NewNotFoundError("bird")
		assert.True(t, sqlitegen.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, sqlitegen.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, sqlitegen.IsNotFound(sqlitegen.ErrNotFound))

		assert.False(t, sqlitegen.IsNotFound(errors.New("other error")))
		assert.False(t, sqlitegen.IsNotFound(nil))
	})
}

func TestInvalidKeyError(t *testing.T) {
	err := sqlitegen.NewInvalidKeyError("cat", int64(0))
	assert.Equal(t, "sqlitegen: update cat: invalid primary key 0", err.Error())
	assert.True(t, errors.Is(err, sqlitegen.ErrInvalidKey))
	assert.False(t, errors.Is(err, sqlitegen.ErrNotFound))
}

func TestConsistencyError(t *testing.T) {
	err := sqlitegen.NewConsistencyError("cat", "update", 2)
	assert.Equal(t, "sqlitegen: update cat: 2 rows affected, expected at most 1", err.Error())
	assert.True(t, errors.Is(err, sqlitegen.ErrConsistency))
	assert.True(t, sqlitegen.IsConsistency(fmt.Errorf("wrap: %w", err)))
	assert.False(t, sqlitegen.IsConsistency(nil))
	assert.False(t, sqlitegen.IsConsistency(sqlitegen.ErrNotFound))
}
