package luahost

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-transformer/internal/plugin"
	"idea-transformer/internal/schema"
)

func testTable() *schema.Table {
	t := schema.NewTable()

	roles := schema.NewMap[any]()
	roles.Set("USER", "User")
	roles.Set("ADMIN", "Admin")
	roles.Set("GUEST", "Guest")
	t.Enum.Set("Roles", roles)

	status := schema.NewMap[any]()
	status.Set("ON", 1)
	status.Set("OFF", 0)
	t.Enum.Set("Status", status)

	return t
}

func compile(t *testing.T, src string) plugin.Plugin {
	t.Helper()

	p, err := NewHost().Compile(context.Background(), "/project/in/test.lua", []byte(src))
	require.NoError(t, err)

	t.Cleanup(func() {
		if c, ok := p.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	})

	return p
}

func runContext() (*plugin.Context, *schema.PluginConfig) {
	cfg := &schema.PluginConfig{Output: "./out/enums.ts", Options: schema.NewMap[any]()}
	cfg.Options.Set("prefix", "App")

	return &plugin.Context{Cwd: "/cwd", SchemaDir: "/project", FS: memfs.New()}, cfg
}

func TestScriptWritesInDeclaredOrder(t *testing.T) {
	p := compile(t, `
function run(schema, config, ctx)
  local out = {}
  for _, name in ipairs(idea.keys(schema.enum)) do
    local values = schema.enum[name]
    table.insert(out, "enum " .. config.prefix .. name .. " {")
    for _, key in ipairs(idea.keys(values)) do
      table.insert(out, "  " .. key .. " = " .. tostring(values[key]) .. ",")
    end
    table.insert(out, "}")
  end
  ctx.write(config.output, table.concat(out, "\n") .. "\n")
end
`)

	pc, cfg := runContext()

	require.NoError(t, p.Run(context.Background(), testTable(), cfg, pc))

	data, err := util.ReadFile(pc.FS, "/project/out/enums.ts")
	require.NoError(t, err)
	assert.Equal(t, `enum AppRoles {
  USER = User,
  ADMIN = Admin,
  GUEST = Guest,
}
enum AppStatus {
  ON = 1,
  OFF = 0,
}
`, string(data))
}

func TestScriptSeesContext(t *testing.T) {
	p := compile(t, `
function run(schema, config, ctx)
  assert(ctx.cwd == "/cwd", "cwd")
  assert(ctx.schema_dir == "/project", "schema_dir")
  assert(ctx.resolve("./a/b") == "/project/a/b", "resolve")
  assert(#idea.keys(schema.model) == 0, "empty section present")
  assert(idea.keys(schema)[1] == "prop", "sections in order")
  ctx.log("checked")
end
`)

	pc, cfg := runContext()
	require.NoError(t, p.Run(context.Background(), testTable(), cfg, pc))
}

func TestScriptFailures(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "lua error",
			src:     `function run() error("bad schema") end`,
			wantErr: "bad schema",
		},
		{
			name:    "returns false",
			src:     `function run() return false, "nothing to do" end`,
			wantErr: "nothing to do",
		},
		{
			name:    "returns nil and message",
			src:     `function run() return nil, "failed" end`,
			wantErr: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, tt.src)
			pc, cfg := runContext()

			err := p.Run(context.Background(), testTable(), cfg, pc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "/project/in/test.lua")
		})
	}
}

func TestScriptReturningTrueSucceeds(t *testing.T) {
	p := compile(t, `function run() return true end`)
	pc, cfg := runContext()

	assert.NoError(t, p.Run(context.Background(), testTable(), cfg, pc))
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax", src: `function run(`, wantErr: "parsing"},
		{name: "top level error", src: `error("boom")`, wantErr: "evaluating"},
		{name: "no run", src: `local x = 1`, wantErr: ErrNoEntryPoint.Error()},
		{name: "run not a function", src: `run = 42`, wantErr: ErrNoEntryPoint.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHost().Compile(context.Background(), "x.lua", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScriptHonoursCancellation(t *testing.T) {
	p := compile(t, `function run() while true do end end`)
	pc, cfg := runContext()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, p.Run(ctx, testTable(), cfg, pc))
}
