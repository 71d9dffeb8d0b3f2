package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TerritoryRole role of a medic within a territory
type TerritoryRole int

const (
	TerritoryRoleNone TerritoryRole = iota
	TerritoryRolePrimary
	TerritoryRoleSecondary
)

// Territory maps a postcode sector to its preferred medics
type Territory struct {
	PostcodeSector   string
	PrimaryMedicID   uuid.NullUUID
	SecondaryMedicID uuid.NullUUID
}

// RoleOf returns the medic's role in the territory
func (t *Territory) RoleOf(medicID uuid.UUID) TerritoryRole {
	if t == nil {
		return TerritoryRoleNone
	}
	switch {
	case t.PrimaryMedicID.Valid && t.PrimaryMedicID.UUID == medicID:
		return TerritoryRolePrimary
	case t.SecondaryMedicID.Valid && t.SecondaryMedicID.UUID == medicID:
		return TerritoryRoleSecondary
	default:
		return TerritoryRoleNone
	}
}

// PostcodeSectorKey returns the territory lookup key: the first four
// characters of the upper-cased, trimmed postcode.
// "SW1A 1AA" -> "SW1A", "e1 6an" -> "E1 6".
func PostcodeSectorKey(postcode string) string {
	key := strings.ToUpper(strings.TrimSpace(postcode))
	if len(key) > PostcodeSectorKeyLength {
		key = key[:PostcodeSectorKeyLength]
	}
	return key
}
