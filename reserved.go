package gorecord

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// reserved holds, per record variant type, the names a field may not use:
// the variant's method names, both as declared and in snake_case.
// Entries are computed once and never modified.
var reserved sync.Map // reflect.Type -> map[string]struct{}

var recordSurface = reflect.TypeOf((*Record)(nil))

func reservedNames(surface reflect.Type) map[string]struct{} {
	if v, ok := reserved.Load(surface); ok {
		return v.(map[string]struct{})
	}
	names := make(map[string]struct{}, surface.NumMethod()*2)
	for i := 0; i < surface.NumMethod(); i++ {
		m := surface.Method(i).Name
		names[m] = struct{}{}
		names[snakeCase(m)] = struct{}{}
	}
	v, _ := reserved.LoadOrStore(surface, names)
	return v.(map[string]struct{})
}

// checkKeyAllowed fails when name collides with a reserved name of the
// record variant.
func checkKeyAllowed(surface reflect.Type, name string) error {
	if _, hit := reservedNames(surface)[name]; hit {
		return Issues{RootPath().Field(name).Issue(CodeSchemaConflict, map[string]any{"field": name, "type": surface.String()})}
	}
	return nil
}

func checkSchemaKeys(surface reflect.Type, s *Schema) error {
	var iss Issues
	for _, f := range s.fields {
		if err := checkKeyAllowed(surface, f.Name); err != nil {
			ii, _ := AsIssues(err)
			iss = AppendIssues(iss, ii...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// snakeCase converts ToPlainTree to to_plain_tree and LoadJSON to load_json.
func snakeCase(s string) string {
	b := &strings.Builder{}
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || (i+1 < len(rs) && unicode.IsLower(rs[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
