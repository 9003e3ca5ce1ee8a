package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWire_RoundTrip(t *testing.T) {
	r := Report{
		ID:         "r-1",
		Title:      "Trench A",
		Site:       "North",
		Notes:      "clay layer",
		Author:     "j.doe",
		Signature:  "c2ln",
		CapturedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, r, ReportFromAPI(ReportToAPI(r)))

	s := StaffRecord{ID: "s1", FullName: "Ann", Phone: "+1 555 0100", UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, s, StaffFromAPI(StaffToAPI(s)))
}

func TestWire_FromAPINormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, 1, 1, 13, 0, 0, 0, zone)

	r := ReportFromAPI(ReportToAPI(Report{ID: "r-1", CapturedAt: local}))
	assert.Equal(t, time.UTC, r.CapturedAt.Location())
	assert.True(t, local.Equal(r.CapturedAt))
}
