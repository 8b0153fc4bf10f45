package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/config"
)

func TestInit_Defaults(t *testing.T) {
	assert.NoError(t, config.Init())

	cfg := config.Get()
	assert.Equal(t, config.SlotDeletePolicyForbid, cfg.Booking.SlotDeletePolicy)
	assert.False(t, cfg.Booking.OneReservationPerUserPerSlot)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 3600, cfg.Cache.TTL)
}

func TestValidSlotDeletePolicy(t *testing.T) {
	tests := []struct {
		policy string
		want   bool
	}{
		{policy: config.SlotDeletePolicyForbid, want: true},
		{policy: config.SlotDeletePolicyCascade, want: true},
		{policy: config.SlotDeletePolicyOrphan, want: true},
		{policy: "", want: false},
		{policy: "purge", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ValidSlotDeletePolicy(tt.policy))
		})
	}
}
