package gorecord

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/reoring/gorecord/internal/num"
)

// comparer walks live state (a) against a plain tree (b, passed as context).
type comparer struct{}

func mismatch(p PathRef, reason string, params map[string]any) Issues {
	if params == nil {
		params = map[string]any{}
	}
	params["reason"] = reason
	return Issues{p.Issue(CodeStructuralMismatch, params)}
}

func (c comparer) onRecord(p PathRef, r *Record, b any) (bool, error) {
	bm, ok := asStringMap(b)
	if !ok {
		return false, mismatch(p, "expected mapping", map[string]any{"got": fmt.Sprintf("%T", b)})
	}
	var ak []string
	for _, k := range r.keys {
		if !r.schema.Ignored(k) {
			ak = append(ak, k)
		}
	}
	var bk []string
	for k := range bm {
		if !r.schema.Ignored(k) {
			bk = append(bk, k)
		}
	}
	if err := sameKeys(p, ak, bk); err != nil {
		return false, err
	}
	for _, k := range ak {
		eq, err := walk[any, bool](c, p.Field(k), r.fields[k], bm[k])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func (c comparer) onSequence(p PathRef, av reflect.Value, b any) (bool, error) {
	if b == nil {
		return false, mismatch(p, "expected sequence", map[string]any{"got": "nil"})
	}
	bv := reflect.ValueOf(b)
	if !isSequence(bv) {
		return false, mismatch(p, "expected sequence", map[string]any{"got": fmt.Sprintf("%T", b)})
	}
	if av.Len() != bv.Len() {
		return false, mismatch(p, "length differs", map[string]any{"want": av.Len(), "got": bv.Len()})
	}
	for i := 0; i < av.Len(); i++ {
		eq, err := walk[any, bool](c, p.Index(i), av.Index(i).Interface(), bv.Index(i).Interface())
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func (c comparer) onMapping(p PathRef, av reflect.Value, b any) (bool, error) {
	bm, ok := asStringMap(b)
	if !ok {
		return false, mismatch(p, "expected mapping", map[string]any{"got": fmt.Sprintf("%T", b)})
	}
	ak := mapKeys(av)
	bk := make([]string, 0, len(bm))
	for k := range bm {
		bk = append(bk, k)
	}
	if err := sameKeys(p, ak, bk); err != nil {
		return false, err
	}
	for _, k := range ak {
		eq, err := walk[any, bool](c, p.Field(k), mapIndex(av, k), bm[k])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// onWrapper compares the wrapper's effective value.
func (c comparer) onWrapper(p PathRef, w Wrapper, b any) (bool, error) {
	v, err := w.Resolve()
	if err != nil {
		return false, rebase(p, err, CodeTypeMismatch)
	}
	return walk[any, bool](c, p, v, b)
}

// onScalar requires b to be a scalar of the same type; numbers compare by
// value across Go numeric types and json.Number.
func (comparer) onScalar(p PathRef, a any, b any) (bool, error) {
	if isContainer(b) {
		return false, mismatch(p, "expected scalar", map[string]any{"got": fmt.Sprintf("%T", b)})
	}
	if num.IsNumber(a) && num.IsNumber(b) {
		return num.Equal(a, b), nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false, mismatch(p, "type differs", map[string]any{"want": fmt.Sprintf("%T", a), "got": fmt.Sprintf("%T", b)})
	}
	return num.Equal(a, b), nil
}

func sameKeys(p PathRef, a, b []string) error {
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	if len(as) == len(bs) {
		same := true
		for i := range as {
			if as[i] != bs[i] {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	missing, extra := diffKeys(as, bs)
	return mismatch(p, "key set differs", map[string]any{"missing": missing, "extra": extra})
}

// diffKeys returns keys of a absent from b and keys of b absent from a.
func diffKeys(a, b []string) (missing, extra []string) {
	inA := make(map[string]struct{}, len(a))
	for _, k := range a {
		inA[k] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, k := range b {
		inB[k] = struct{}{}
		if _, ok := inA[k]; !ok {
			extra = append(extra, k)
		}
	}
	for _, k := range a {
		if _, ok := inB[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing, extra
}

// Equals compares the record against a plain tree (or another record, which
// is exported first). Keys listed in the schema's ignore list are skipped at
// every record level. Structural differences (key sets, lengths, types) fail
// with a structural mismatch naming the path; differing scalar values return
// false.
func (r *Record) Equals(target any) (bool, error) {
	if other, ok := target.(*Record); ok && other != nil {
		tree, err := other.ToPlainTree()
		if err != nil {
			return false, err
		}
		target = tree
	}
	if _, ok := asStringMap(target); !ok {
		return false, mismatch(RootPath(), "expected mapping", map[string]any{"got": fmt.Sprintf("%T", target)})
	}
	return walk[any, bool](comparer{}, RootPath(), r, target)
}
