package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("03/15/2024")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.March, 15), d)

	for _, bad := range []string{"2024-03-15", "15/03/2024", "3/15/24", "3/5/2024", "01/01/0001", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"12/31/2023","end":null}`), &payload))
	assert.Equal(t, NewDate(2023, time.December, 31), payload.Start)
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"12/31/2023","end":null}`, string(out))

	err = json.Unmarshal([]byte(`{"start":"2023-12-31"}`), &payload)
	assert.ErrorContains(t, err, "MM/DD/YYYY")
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)))
	assert.Equal(t, NewDate(2024, time.January, 2), d)

	require.NoError(t, d.Scan("2024-02-03"))
	assert.Equal(t, NewDate(2024, time.February, 3), d)

	require.NoError(t, d.Scan([]byte("2024-02-04 00:00:00+00:00")))
	assert.Equal(t, NewDate(2024, time.February, 4), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("yesterday"))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2024, time.May, 6).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
