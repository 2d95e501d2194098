package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAcceptsRFC3339(t *testing.T) {
	req := CreateEventRequest{Date: "2026-10-01T09:30:00Z"}
	parsed, err := req.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC), parsed)
}

func TestParseDateAcceptsDateOnly(t *testing.T) {
	req := CreateEventRequest{Date: "2026-10-01"}
	parsed, err := req.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	req := CreateEventRequest{Date: "mañana"}
	_, err := req.ParseDate()
	assert.Error(t, err)
}
