package company

import "time"

// DefaultKioskPin is used until an admin sets one.
const DefaultKioskPin = "1234"

// Company is a tenant. Every HR row belongs to exactly one company.
type Company struct {
	ID                string
	Name              string
	Username          string
	AdminPasswordHash string
	KioskPin          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EffectiveKioskPin returns the configured PIN or DefaultKioskPin.
func (c Company) EffectiveKioskPin() string {
	if c.KioskPin == nil || *c.KioskPin == "" {
		return DefaultKioskPin
	}
	return *c.KioskPin
}
