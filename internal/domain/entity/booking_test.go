package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to assigned", BookingPending, BookingAssigned, true},
		{"pending to cancelled", BookingPending, BookingCancelled, true},
		{"pending to in_progress skips assignment", BookingPending, BookingInProgress, false},
		{"pending to completed skips assignment", BookingPending, BookingCompleted, false},
		{"assigned to in_progress", BookingAssigned, BookingInProgress, true},
		{"assigned to completed", BookingAssigned, BookingCompleted, true},
		{"assigned to cancelled", BookingAssigned, BookingCancelled, true},
		{"assigned back to pending", BookingAssigned, BookingPending, false},
		{"in_progress to completed", BookingInProgress, BookingCompleted, true},
		{"in_progress cannot be cancelled", BookingInProgress, BookingCancelled, false},
		{"in_progress back to assigned", BookingInProgress, BookingAssigned, false},
		{"completed is terminal", BookingCompleted, BookingInProgress, false},
		{"cancelled is terminal", BookingCancelled, BookingAssigned, false},
		{"no-op move rejected", BookingAssigned, BookingAssigned, false},
		{"unknown source has no successors", BookingStatus("bogus"), BookingAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, status := range []BookingStatus{BookingPending, BookingAssigned, BookingInProgress, BookingCompleted, BookingCancelled} {
		assert.True(t, status.IsValid(), status.String())
	}
	assert.False(t, BookingStatus("done").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingRequest_ApplyDefaults(t *testing.T) {
	booking := &BookingRequest{Category: CategoryPlumber}
	booking.ApplyDefaults()

	assert.Equal(t, UrgencyNormal, booking.Urgency)
	assert.Equal(t, SlotMorning, booking.TimeSlot)
	assert.Equal(t, BookingPending, booking.Status)
}

func TestBookingRequest_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	booking := &BookingRequest{
		Urgency:  UrgencyUrgent,
		TimeSlot: SlotEvening,
		Status:   BookingAssigned,
	}
	booking.ApplyDefaults()

	assert.Equal(t, UrgencyUrgent, booking.Urgency)
	assert.Equal(t, SlotEvening, booking.TimeSlot)
	assert.Equal(t, BookingAssigned, booking.Status)
}
