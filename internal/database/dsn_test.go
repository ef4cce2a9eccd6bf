package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "data.sqlite?_busy_timeout=5000&_txlock=immediate", sqliteDSN("data.sqlite"))
	assert.Equal(t, "file:data.sqlite?cache=shared&_busy_timeout=5000&_txlock=immediate", sqliteDSN("file:data.sqlite?cache=shared"))
	assert.Equal(t, "data.sqlite?_timeout=100&_txlock=deferred", sqliteDSN("data.sqlite?_timeout=100&_txlock=deferred"))
}
