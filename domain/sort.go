package domain

import (
	"fmt"
	"strings"
)

// SortKey names the record field a page is ordered by. SortKeyNone keeps the fetch order.
type SortKey string

const (
	SortKeyNone     SortKey = ""
	SortKeyName     SortKey = "name"
	SortKeyID       SortKey = "id"
	SortKeyType     SortKey = "type"
	SortKeyState    SortKey = "state"
	SortKeyAZ       SortKey = "az"
	SortKeyPublicIP SortKey = "publicIP"
)

// SortKeys lists every sort key accepted from API consumers.
var SortKeys = []SortKey{SortKeyName, SortKeyID, SortKeyType, SortKeyState, SortKeyAZ, SortKeyPublicIP}

// ParseSortKey returns the SortKey named by s, or SortKeyNone and false for unknown or empty names.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return SortKeyNone, false
}

// Direction is the sort direction of a page.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection maps "asc"/"desc" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown direction %q", s)
	}
}

// Field returns the value of the field named by k and whether it is present.
// SortKeyNone has no field and always reports absent.
func (r *InstanceRecord) Field(k SortKey) (string, bool) {
	var p *string
	switch k {
	case SortKeyID:
		return r.ID, r.ID != ""
	case SortKeyName:
		p = r.Name
	case SortKeyType:
		p = r.Type
	case SortKeyState:
		p = r.State
	case SortKeyAZ:
		p = r.AZ
	case SortKeyPublicIP:
		p = r.PublicIP
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// CompareField compares a and b by the field named by k in direction d.
// Absent values are placed after present ones regardless of d; two absent values compare equal.
func CompareField(a, b *InstanceRecord, k SortKey, d Direction) int {
	if k == SortKeyNone {
		return 0
	}
	av, aok := a.Field(k)
	bv, bok := b.Field(k)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	c := strings.Compare(av, bv)
	if d == Descending {
		return -c
	}
	return c
}
