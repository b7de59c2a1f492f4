package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransition(t *testing.T) {
	statuses := []Status{StatusPending, StatusConfirmed, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]Status{from, to}]
			assert.Equalf(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_NothingReturnsToPending(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		assert.False(t, from.CanTransition(StatusPending))
	}
}

func TestStatus_Blocks(t *testing.T) {
	assert.True(t, StatusConfirmed.Blocks())
	assert.False(t, StatusPending.Blocks())
	assert.False(t, StatusCancelled.Blocks())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("approved")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFilter_Match(t *testing.T) {
	r := Reservation{RequesterID: "u1", FacilityID: "f1", Date: "2024-06-10", Status: StatusPending}

	assert.True(t, Filter{}.Match(r))
	assert.True(t, Filter{RequesterID: "u1", FacilityID: "f1", Date: "2024-06-10", Status: StatusPending}.Match(r))
	assert.False(t, Filter{RequesterID: "u2"}.Match(r))
	assert.False(t, Filter{Status: StatusConfirmed}.Match(r))
	assert.False(t, Filter{Date: "2024-06-11"}.Match(r))
}

func TestErrStatusConflict_IsInvalidTransition(t *testing.T) {
	assert.ErrorIs(t, ErrStatusConflict, ErrInvalidTransition)
}
