package shared

import "strings"

// Dusun is a hamlet of the village. Most public records are grouped by dusun.
type Dusun string

const (
	Dusun1 Dusun = "dusun_1"
	Dusun2 Dusun = "dusun_2"
	Dusun3 Dusun = "dusun_3"
	Dusun4 Dusun = "dusun_4"
)

var dusunLabels = map[Dusun]string{
	Dusun1: "Dusun I",
	Dusun2: "Dusun II",
	Dusun3: "Dusun III",
	Dusun4: "Dusun IV",
}

// ErrInvalidDusun is returned when a value is not one of the village hamlets.
var ErrInvalidDusun = NewDomainError("INVALID_DUSUN", "Dusun tidak valid")

// AllDusun returns the hamlets in display order.
func AllDusun() []Dusun {
	return []Dusun{Dusun1, Dusun2, Dusun3, Dusun4}
}

// IsValid reports whether d is a known hamlet.
func (d Dusun) IsValid() bool {
	_, ok := dusunLabels[d]
	return ok
}

// Label returns the display name, e.g. "Dusun II".
func (d Dusun) Label() string {
	if label, ok := dusunLabels[d]; ok {
		return label
	}
	return string(d)
}

func (d Dusun) String() string {
	return string(d)
}

// ParseDusun accepts either the code ("dusun_2") or the label ("Dusun II").
func ParseDusun(s string) (Dusun, error) {
	s = strings.TrimSpace(s)
	d := Dusun(strings.ToLower(s))
	if d.IsValid() {
		return d, nil
	}
	for code, label := range dusunLabels {
		if strings.EqualFold(label, s) {
			return code, nil
		}
	}
	return "", ErrInvalidDusun
}

// NormalizeDusun maps a code or label to its code. Unknown values are returned
// unchanged so entity validation can reject them.
func NormalizeDusun(s string) Dusun {
	if d, err := ParseDusun(s); err == nil {
		return d
	}
	return Dusun(s)
}

// ValidateCoordinates checks an optional latitude/longitude pair.
// Either both are set or neither is.
func ValidateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return NewDomainError("INVALID_COORDINATES", "Latitude dan longitude harus diisi bersamaan")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return NewDomainError("INVALID_COORDINATES", "Koordinat di luar jangkauan")
	}
	return nil
}
