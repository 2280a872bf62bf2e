package enums

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// DeletedFlag is the soft-delete marker stored as "Yes"/"No" in the legacy
// schema. Call sites in the old system were inconsistently cased, so the flag
// normalizes case-insensitively when scanned.
type DeletedFlag string

const (
	DeletedYes DeletedFlag = "Yes"
	DeletedNo  DeletedFlag = "No"
)

// String implements fmt.Stringer.
func (d DeletedFlag) String() string {
	return string(d)
}

// Bool reports whether the record is soft-deleted.
func (d DeletedFlag) Bool() bool {
	return strings.EqualFold(string(d), string(DeletedYes))
}

// IsValid reports whether the value is a known DeletedFlag.
func (d DeletedFlag) IsValid() bool {
	return strings.EqualFold(string(d), string(DeletedYes)) ||
		strings.EqualFold(string(d), string(DeletedNo))
}

// ParseDeletedFlag normalizes raw input into a canonical DeletedFlag.
func ParseDeletedFlag(value string) (DeletedFlag, error) {
	switch {
	case strings.EqualFold(value, string(DeletedYes)):
		return DeletedYes, nil
	case strings.EqualFold(value, string(DeletedNo)), value == "":
		return DeletedNo, nil
	}
	return "", fmt.Errorf("invalid deleted flag %q", value)
}

// Scan implements sql.Scanner, normalizing the legacy casing on read.
func (d *DeletedFlag) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = DeletedNo
		return nil
	case string:
		parsed, err := ParseDeletedFlag(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDeletedFlag(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into DeletedFlag", value)
}

// Value implements driver.Valuer, always writing the canonical casing.
func (d DeletedFlag) Value() (driver.Value, error) {
	if d.Bool() {
		return string(DeletedYes), nil
	}
	return string(DeletedNo), nil
}
