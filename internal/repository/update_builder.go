package repository

import (
	"fmt"
	"strings"

	"catalogo/internal/model"
)

// updateField pairs a fixed column name with a validated value. The set of
// columns reachable from here is closed; nothing user-supplied ever becomes
// part of the SQL text.
type updateField struct {
	column string
	value  any
}

// updateFields returns the supplied mutations in fixed column order.
func updateFields(u model.ProductUpdate) []updateField {
	var fields []updateField
	if u.Name != nil {
		fields = append(fields, updateField{"name", *u.Name})
	}
	if u.Price != nil {
		fields = append(fields, updateField{"price", *u.Price})
	}
	if u.Category != nil {
		fields = append(fields, updateField{"category", *u.Category})
	}
	if u.Stock != nil {
		fields = append(fields, updateField{"stock", *u.Stock})
	}
	if u.Description != nil {
		fields = append(fields, updateField{"description", *u.Description})
	}
	if u.Image != nil {
		fields = append(fields, updateField{"image", u.Image})
	}
	return fields
}

// buildUpdateQuery renders one parameterized UPDATE statement over the closed
// field set. The target id occupies the final placeholder.
func buildUpdateQuery(id int64, u model.ProductUpdate) (string, []any) {
	fields := updateFields(u)

	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		set = append(set, fmt.Sprintf("%s = $%d", f.column, i+1))
		args = append(args, f.value)
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d",
		strings.Join(set, ", "),
		len(args),
	)
	return query, args
}
