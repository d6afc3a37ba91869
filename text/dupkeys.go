package text

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateKeys scans JSON text and returns the JSON Pointer of every object
// key that repeats an earlier key of the same object. Decoding into a map
// keeps only the last value, so callers that must not lose data check first.
func DuplicateKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var dups []string
	var stack []dupFrame
	endValue := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.wantKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("text: scan json: %w", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, wantKey: true})
			case '[':
				stack = append(stack, dupFrame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				endValue()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].wantKey {
				top := &stack[n-1]
				if _, seen := top.keys[v]; seen {
					dups = append(dups, pointer(stack[:n-1])+"/"+escape(v))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.wantKey = false
				continue
			}
			endValue()
		default:
			endValue()
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("text: scan json: %w", io.ErrUnexpectedEOF)
	}
	return dups, nil
}

// DecodeJSONUnique is DecodeJSON that fails when an object repeats a key.
func DecodeJSONUnique(data []byte) (any, error) {
	dups, err := DuplicateKeys(data)
	if err != nil {
		return nil, err
	}
	if len(dups) > 0 {
		return nil, fmt.Errorf("text: duplicate keys at %s", strings.Join(dups, ", "))
	}
	return DecodeJSON(data)
}

type dupFrame struct {
	object  bool
	keys    map[string]struct{}
	key     string
	index   int
	wantKey bool
}

func pointer(frames []dupFrame) string {
	b := &strings.Builder{}
	for _, f := range frames {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escape(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
