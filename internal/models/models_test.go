package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCohort_IsFull(t *testing.T) {
	tests := []struct {
		name     string
		capacity *int
		enrolled int
		expected bool
	}{
		{name: "unlimited", capacity: nil, enrolled: 1000, expected: false},
		{name: "zero means unlimited", capacity: intPtr(0), enrolled: 5, expected: false},
		{name: "room left", capacity: intPtr(30), enrolled: 29, expected: false},
		{name: "at capacity", capacity: intPtr(30), enrolled: 30, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cohort{Capacity: tt.capacity}
			assert.Equal(t, tt.expected, c.IsFull(tt.enrolled))
		})
	}
}

func TestJoinCohortRequest_NormalizedCode(t *testing.T) {
	req := &JoinCohortRequest{Code: "  cohort2024 \n"}
	assert.Equal(t, "COHORT2024", req.NormalizedCode())
}

func TestValidEnrollmentCode(t *testing.T) {
	assert.True(t, ValidEnrollmentCode("COHORT2024"))
	assert.True(t, ValidEnrollmentCode("SPRING-24"))
	assert.True(t, ValidEnrollmentCode("GROUP_A"))
	assert.False(t, ValidEnrollmentCode("AB"))
	assert.False(t, ValidEnrollmentCode("spring24"))
	assert.False(t, ValidEnrollmentCode("SPRING 24"))
	assert.False(t, ValidEnrollmentCode("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456"))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, TrackPremium.Valid())
	assert.False(t, Track("VIP").Valid())
	assert.True(t, StatusLate.Valid())
	assert.False(t, SubmissionStatus("DONE").Valid())
	assert.True(t, StatusCompleted.IsFinal())
	assert.False(t, StatusInProgress.IsFinal())
	assert.Equal(t, "ADMIN", RoleAdmin.String())
	assert.Equal(t, "STUDENT", RoleStudent.String())
}
