package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusPending, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, Status("archived"), false},
		{StatusFailed, StatusPending, false},
		{StatusFailed, StatusFailed, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{Status("archived"), StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestKind_Valid(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("sync-everything").Valid())
	assert.False(t, Kind("").Valid())
}

func TestAction_JSONRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	actions := []Action{
		{
			ID:          "a1",
			Kind:        KindSubmitReport,
			Payload:     SubmitReportPayload{Report: Report{ID: "p1", Title: "Осмотр", CapturedAt: created}},
			CreatedAt:   created,
			RetryBudget: 3,
			Status:      StatusPending,
		},
		{
			ID:          "a2",
			Kind:        KindDeleteReport,
			Payload:     DeleteReportPayload{ReportID: "p1"},
			CreatedAt:   created,
			RetryCount:  2,
			RetryBudget: 2,
			Status:      StatusFailed,
		},
		{
			ID:          "a3",
			Kind:        KindFullResync,
			Payload:     FullResyncPayload{},
			CreatedAt:   created,
			RetryBudget: 1,
			Status:      StatusPending,
		},
	}

	data, err := json.Marshal(actions)
	require.NoError(t, err)

	var decoded []Action
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, actions, decoded)
}

func TestAction_JSONFieldNames(t *testing.T) {
	a := Action{
		ID:          "a1",
		Kind:        KindDeleteReport,
		Payload:     DeleteReportPayload{ReportID: "r1"},
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		RetryBudget: 3,
		Status:      StatusPending,
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "a1", raw["id"])
	assert.Equal(t, "delete-report", raw["kind"])
	assert.Equal(t, "2024-01-02T03:04:05Z", raw["createdAt"])
	assert.EqualValues(t, 0, raw["retryCount"])
	assert.EqualValues(t, 3, raw["retryBudget"])
	assert.Equal(t, "pending", raw["status"])
	assert.Equal(t, map[string]any{"reportId": "r1"}, raw["payload"])
}

func TestAction_UnmarshalUnknownKind(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"id":"x","kind":"teleport","payload":{}}`), &a)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestAction_UnmarshalBadPayload(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"id":"x","kind":"delete-report","payload":"oops"}`), &a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete-report payload")
}

func TestAction_Exhausted(t *testing.T) {
	a := Action{RetryCount: 1, RetryBudget: 2}
	assert.False(t, a.Exhausted())
	a.RetryCount = 2
	assert.True(t, a.Exhausted())
}
