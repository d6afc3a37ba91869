package schemafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/schemafile"
	"github.com/reoring/gorecord/value"
)

const declarations = `
records:
  Person:
    strict: true
    ignore_on_equals: [updated]
    fields:
      name: ""
      age: 0
      tags: []
      extra: {}
      meta: {literal: {source: import}}
      home: {record: Address, with: {city: Kyoto}}
      boss: {type: Person}
      note: {type: any}
      email: {wrap: required, default: "", required: true}
      born: {wrap: timestamp, layout: "%Y-%m-%d", default: "2000-01-02"}
      score: {wrap: range, default: 1, min: 1, max: 5}
      color: {wrap: enum, allowed: [red, green]}
      friends: {wrap: list, of: Person}
      updated: ""
  Address:
    fields:
      city: ""
  Employee:
    inherit: Person
    strict: false
    fields:
      company: ""
`

func TestParse(t *testing.T) {
	set, err := schemafile.Parse([]byte(declarations))
	require.NoError(t, err)
	require.Equal(t, []string{"Person", "Address", "Employee"}, set.Names())

	person, ok := set.Schema("Person")
	require.True(t, ok)
	require.True(t, person.IsStrict())
	require.True(t, person.Ignored("updated"))
	require.Equal(t, []string{"name", "age", "tags", "extra", "meta", "home", "boss", "note", "email", "born", "score", "color", "friends", "updated"}, person.Keys())

	kinds := map[string]gorecord.Kind{}
	for _, f := range person.Fields() {
		kinds[f.Name] = f.Descriptor.Kind()
	}
	require.Equal(t, gorecord.KindLiteral, kinds["name"])
	require.Equal(t, gorecord.KindNested, kinds["extra"])
	require.Equal(t, gorecord.KindNested, kinds["home"])
	require.Equal(t, gorecord.KindType, kinds["boss"])
	require.Equal(t, gorecord.KindLiteral, kinds["note"])
	require.Equal(t, gorecord.KindWrapper, kinds["email"])

	d, _ := person.Descriptor("boss")
	require.Same(t, person, d.TypeRef().Schema())

	d, _ = person.Descriptor("meta")
	require.Equal(t, map[string]any{"source": "import"}, d.LiteralValue())

	employee, ok := set.Schema("Employee")
	require.True(t, ok)
	require.True(t, employee.Is(person))
	require.False(t, employee.IsStrict())
}

func TestParse_RecordsWork(t *testing.T) {
	set, err := schemafile.Parse([]byte(declarations))
	require.NoError(t, err)
	person, _ := set.Schema("Person")

	r, err := gorecord.New(person, map[string]any{"name": "a", "email": "a@example.com"})
	require.NoError(t, err)
	err = r.Check()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/boss", iss[0].Path, "an unassigned type requirement is not data")
	r.ForceUpdate(map[string]any{"boss": nil})

	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"city": "Kyoto"}, tree["home"])
	require.Equal(t, "2000-01-02", tree["born"])
	require.Equal(t, map[string]any{"source": "import"}, tree["meta"])

	err = r.Set("score", 9)
	require.True(t, gorecord.HasCode(err, gorecord.CodeOutOfRange))
	err = r.Set("color", "blue")
	require.True(t, gorecord.HasCode(err, gorecord.CodeOutOfRange))
	err = r.Set("nick", "x")
	require.True(t, gorecord.HasCode(err, gorecord.CodeUnknownField))

	w, _ := r.Get("email")
	_, ok = w.(*value.Required)
	require.True(t, ok)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"not a mapping":   "records: [a]",
		"unknown record":  "records: {A: {fields: {b: {record: Missing}}}}",
		"unknown type":    "records: {A: {fields: {b: {type: nope}}}}",
		"unknown wrapper": "records: {A: {fields: {b: {wrap: nope}}}}",
		"range bounds":    "records: {A: {fields: {b: {wrap: range, min: 1}}}}",
		"enum values":     "records: {A: {fields: {b: {wrap: enum}}}}",
		"timestamp":       "records: {A: {fields: {b: {wrap: timestamp}}}}",
		"inherit cycle":   "records: {A: {inherit: B}, B: {inherit: A}}",
		"record cycle":    "records: {A: {fields: {b: {record: A}}}}",
		"fields list":     "records: {A: {fields: [a]}}",
		"bad yaml":        "records: {",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.Parse([]byte(src))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(declarations), 0o600))
	set, err := schemafile.Load(path)
	require.NoError(t, err)
	_, ok := set.Schema("Address")
	require.True(t, ok)

	_, err = schemafile.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
