package jwt

import (
	"time"

	"slotbook/config"
)

func NewWithClock(cfg *config.Config, now func() time.Time) *Service {
	return &Service{config: cfg, now: now}
}
