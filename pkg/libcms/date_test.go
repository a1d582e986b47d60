package libcms_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	data := []struct {
		input    string
		expected string
	}{
		{input: "2025-03-14", expected: "2025-03-14"},
		{input: "2025-03-14T00:00:00.000Z", expected: "2025-03-14"},
		{input: " 2025-03-14 ", expected: "2025-03-14"},
		{input: "March 14, 2025", expected: "2025-03-14"},
		{input: "2025/03/14", expected: "2025-03-14"},
	}

	for _, d := range data {
		date, err := libcms.ParseDate(d.input)
		require.NoError(t, err, d.input)
		assert.Equal(t, d.expected, date.String(), d.input)
	}

	_, err := libcms.ParseDate("")
	assert.Error(t, err)

	_, err = libcms.ParseDate("not a date")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var event libcms.Event

	err := json.Unmarshal([]byte(`{"date":"2025-03-14T10:30:00.000Z"}`), &event)
	require.NoError(t, err)
	assert.Equal(t, libcms.NewDate(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)), event.Date)

	err = json.Unmarshal([]byte(`{"date":null}`), &event)
	require.NoError(t, err)
	assert.True(t, event.Date.IsZero())

	err = json.Unmarshal([]byte(`{"date":42}`), &event)
	assert.Error(t, err)

	payload, err := json.Marshal(libcms.EventParams{Date: libcms.NewDate(time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"","description":"","date":"2025-03-14","isActive":false}`, string(payload))

	payload, err = json.Marshal(libcms.Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(payload))
}
