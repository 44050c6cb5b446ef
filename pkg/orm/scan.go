package orm

import (
	"github.com/satishbabariya/ormlite-go/internal/core/query/mapper"
)

// Scan copies the attributes of rec into the struct pointed to by dest.
// Struct fields are matched by their orm, db or json tag, else by name.
func Scan(rec *Record, dest any) error {
	return mapper.ScanStruct(rec.Values(), dest)
}

// ScanAll copies records into the slice of structs pointed to by dest.
func ScanAll(recs []*Record, dest any) error {
	rows := make([]map[string]any, len(recs))
	for i, rec := range recs {
		rows[i] = rec.Values()
	}
	return mapper.ScanStructs(rows, dest)
}
