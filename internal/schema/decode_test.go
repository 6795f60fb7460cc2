package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doc builds an ordered mapping from alternating keys and values.
func doc(kv ...any) *Map[any] {
	m := NewMap[any]()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}

	return m
}

func TestDecode(t *testing.T) {
	raw := doc(
		"use", []any{"./shared.yml"},
		"model", doc(
			"Profile", doc(
				"extends", "Contact",
				"attributes", doc("label", []any{"Profile", "Profiles"}),
				"columns", []any{
					doc("name", "id", "type", "String", "required", true),
					doc("name", "tags", "type", "String", "multiple", true,
						"attributes", doc("label", []any{"Tags"})),
				},
			),
			"Empty", nil,
		),
		"enum", doc("Roles", doc("ADMIN", "Admin", "USER", "User")),
		"prop", doc("Config", doc("placeholder", "Enter")),
		"plugin", doc("./in/make-enums", doc("output", "./out/enums.ts", "lang", "ts")),
	)

	table, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"./shared.yml"}, table.Use)
	assert.Equal(t, []string{"Profile", "Empty"}, table.Model.Keys())

	profile, ok := table.Model.Get("Profile")
	require.True(t, ok)
	assert.Equal(t, "Profile", profile.Name)
	assert.Equal(t, "Contact", profile.Extends)
	assert.Equal(t, []string{"id", "tags"}, profile.ColumnNames())
	assert.True(t, profile.Columns[0].Required)
	assert.True(t, profile.Columns[1].Multiple)

	label, ok := profile.Columns[1].Attributes.Get("label")
	require.True(t, ok)
	assert.Equal(t, []any{"Tags"}, label)

	empty, _ := table.Model.Get("Empty")
	assert.Nil(t, empty.Columns)
	assert.Equal(t, 0, empty.Attributes.Len())

	roles, _ := table.Enum.Get("Roles")
	assert.Equal(t, []string{"ADMIN", "USER"}, roles.Keys())

	plugin, _ := table.Plugin.Get("./in/make-enums")
	assert.Equal(t, "./out/enums.ts", plugin.Output)
	assert.Equal(t, "ts", plugin.StringOption("lang", ""))
	assert.Equal(t, "go", plugin.StringOption("missing", "go"))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Map[any]
		want string
	}{
		{
			name: "unknown section",
			doc:  doc("models", doc()),
			want: `unknown section "models"`,
		},
		{
			name: "column without name",
			doc:  doc("type", doc("Address", doc("columns", []any{doc("type", "String")}))),
			want: `type "Address": columns[0]: name is required`,
		},
		{
			name: "duplicate column",
			doc: doc("model", doc("User", doc("columns", []any{
				doc("name", "id"), doc("name", "id"),
			}))),
			want: `duplicate column "id"`,
		},
		{
			name: "extends not a string",
			doc:  doc("model", doc("User", doc("extends", []any{"A", "B"}))),
			want: "extends must be a string",
		},
		{
			name: "output not a string",
			doc:  doc("plugin", doc("gen", doc("output", 1))),
			want: "output must be a string",
		},
		{
			name: "use not a list",
			doc:  doc("use", doc()),
			want: "use: expected a string or list of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := doc(
		"type", doc("Address", doc(
			"attributes", doc("label", []any{"Address"}),
			"columns", []any{doc("name", "street", "type", "String")},
		)),
		"model", doc("Bare", doc()),
		"plugin", doc("go-types", doc("output", "types.go", "package", "models")),
	)

	table, err := Decode(raw)
	require.NoError(t, err)

	again, err := Decode(Encode(table))
	require.NoError(t, err)
	assert.Equal(t, table, again)

	encoded := Encode(table)
	assert.Equal(t, []string{"prop", "enum", "type", "model", "plugin"}, encoded.Keys())

	plugins, _ := encoded.Get("plugin")
	goTypes, _ := plugins.(*Map[any]).Get("go-types")
	assert.Equal(t, []string{"output", "package"}, goTypes.(*Map[any]).Keys())
}

func TestTableImportKeepsExisting(t *testing.T) {
	root := NewTable()
	root.Enum.Set("Roles", doc("ADMIN", "Admin"))

	shared := NewTable()
	shared.Enum.Set("Roles", doc("GUEST", "Guest"))
	shared.Enum.Set("Status", doc("ACTIVE", "Active"))
	shared.Model.Set("Auth", &TypeConfig{Name: "Auth"})

	root.Import(shared)

	assert.Equal(t, []string{"Roles", "Status"}, root.Enum.Keys())
	roles, _ := root.Enum.Get("Roles")
	assert.Equal(t, []string{"ADMIN"}, roles.Keys())
	assert.True(t, root.Model.Has("Auth"))
}

func TestTableCloneIsIndependent(t *testing.T) {
	table := NewTable()
	table.Model.Set("User", &TypeConfig{
		Name:       "User",
		Columns:    []ColumnConfig{{Name: "id", Attributes: doc("label", "ID")}},
		Attributes: NewMap[any](),
	})
	table.Plugin.Set("gen", &PluginConfig{Output: "out", Options: NewMap[any]()})

	clone := table.Clone()
	require.Equal(t, table, clone)

	user, _ := clone.Model.Get("User")
	user.Columns[0].Attributes.Set("label", "Changed")
	user.Columns = append(user.Columns, ColumnConfig{Name: "extra"})

	orig, _ := table.Model.Get("User")
	assert.Equal(t, []string{"id"}, orig.ColumnNames())

	label, _ := orig.Columns[0].Attributes.Get("label")
	assert.Equal(t, "ID", label)
}
