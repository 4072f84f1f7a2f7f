package enum

import (
	"database/sql/driver"
	"fmt"
)

// GovFeeType represents how a service's government fee is calculated
type GovFeeType string

const (
	// GovFeeTypeFixed charges gov_fee_value per unit
	GovFeeTypeFixed GovFeeType = "fixed"
	// GovFeeTypeVariable allows a per-service calculation override; without
	// one it prices the same as fixed
	GovFeeTypeVariable GovFeeType = "variable"
)

func (t GovFeeType) IsValid() bool {
	return t == GovFeeTypeFixed || t == GovFeeTypeVariable
}

func (t GovFeeType) String() string {
	return string(t)
}

func (t GovFeeType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *GovFeeType) Scan(value interface{}) error {
	if value == nil {
		*t = GovFeeTypeFixed
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = GovFeeType(v)
	case []byte:
		*t = GovFeeType(v)
	default:
		return fmt.Errorf("cannot scan %T into GovFeeType", value)
	}
	return nil
}
