package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/infras/postgres"
)

func TestLockOrder(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "sorted and unique",
			keys: []string{"slot-model:b", "reservation-slot:1", "slot-model:a", "slot-model:b", ""},
			want: []string{"reservation-slot:1", "slot-model:a", "slot-model:b"},
		},
		{
			name: "nothing to lock",
			keys: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.LockOrder(tt.keys))
		})
	}
}

func TestTxFromContext(t *testing.T) {
	assert.Nil(t, postgres.TxFromContext(context.Background()))
}
