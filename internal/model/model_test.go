package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBird(t *testing.T) {
	t.Parallel()

	bird := Species{Class: ClassBird}
	plant := Species{Class: ClassPlant}

	assert.True(t, bird.IsBird())
	assert.False(t, plant.IsBird())
}

func TestIsThreatened(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status ConservationStatus
		want   bool
	}{
		{"least concern", StatusLeastConcern, false},
		{"near threatened", StatusNearThreatened, true},
		{"vulnerable", StatusVulnerable, true},
		{"endangered", StatusEndangered, true},
		{"critically endangered", StatusCriticallyEndanger, true},
		{"unset", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sp := Species{ConservationStatus: tt.status}
			assert.Equal(t, tt.want, sp.IsThreatened())
		})
	}
}
