package odoo

// XML-RPC replies decode into untyped values; these helpers coerce the
// shapes Odoo actually returns (ints, arrays of ints, arrays of structs).

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toInt64Slice(v any) []int64 {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		if n, ok := toInt64(item); ok {
			out = append(out, n)
		}
	}
	return out
}

func toRecords(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

// FieldInt64 reads a numeric field from a record. Odoo renders empty
// many2one fields as boolean false, so absence is not an error.
func FieldInt64(rec map[string]any, key string) (int64, bool) {
	return toInt64(rec[key])
}

// FieldString reads a string field, treating Odoo's false-for-empty as "".
func FieldString(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

// FieldRelation reads a many2one field, which Odoo renders as [id, name].
func FieldRelation(rec map[string]any, key string) (int64, bool) {
	pair, ok := rec[key].([]any)
	if !ok || len(pair) == 0 {
		return 0, false
	}
	return toInt64(pair[0])
}

// FieldIDList reads a one2many/many2many field rendered as an id array.
func FieldIDList(rec map[string]any, key string) []int64 {
	return toInt64Slice(rec[key])
}
