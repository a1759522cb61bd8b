package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOnly(t *testing.T) {
	d, err := ParseDateOnly("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = ParseDateOnly("01/03/2024")
	assert.Error(t, err)

	_, err = ParseDateOnly("2024-13-40")
	assert.Error(t, err)
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly

	// time.Time from a driver that returns DATE as timestamp
	ts := time.Date(2024, 6, 30, 23, 45, 0, 0, time.FixedZone("CST", -6*3600))
	require.NoError(t, d.Scan(ts))
	assert.Equal(t, "2024-06-30", d.String())

	// plain string
	require.NoError(t, d.Scan("2024-03-01"))
	assert.Equal(t, "2024-03-01", d.String())

	// string with a trailing time component
	require.NoError(t, d.Scan("2024-03-01T00:00:00Z"))
	assert.Equal(t, "2024-03-01", d.String())

	// []byte
	require.NoError(t, d.Scan([]byte("2024-06-30")))
	assert.Equal(t, "2024-06-30", d.String())

	// nil resets to zero
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOnlyValue(t *testing.T) {
	d, err := ParseDateOnly("2024-03-01")
	require.NoError(t, err)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", v)

	var zero DateOnly
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDateOnlyJSON(t *testing.T) {
	d, err := ParseDateOnly("2024-06-30")
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-30"`, string(out))

	var parsed DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01"`), &parsed))
	assert.Equal(t, "2024-03-01", parsed.String())

	var zero DateOnly
	out, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	require.NoError(t, json.Unmarshal([]byte("null"), &parsed))
	assert.True(t, parsed.IsZero())
}
