package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
	mysqlErrCheckViolated   = 3819
)

// IsUniqueViolation reports whether the error is a MySQL duplicate-key
// violation (ER_DUP_ENTRY).
func IsUniqueViolation(err error) bool {
	return mysqlErrNumber(err) == mysqlErrDuplicateEntry
}

// IsForeignKeyViolation reports whether the error references a missing parent
// row (ER_NO_REFERENCED_ROW_2).
func IsForeignKeyViolation(err error) bool {
	return mysqlErrNumber(err) == mysqlErrNoReferencedRow
}

// IsCheckViolation reports whether a CHECK constraint rejected the write,
// e.g. the non-negative stock guard on inventory_items.
func IsCheckViolation(err error) bool {
	return mysqlErrNumber(err) == mysqlErrCheckViolated
}

func mysqlErrNumber(err error) uint16 {
	if err == nil {
		return 0
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}
