package luahost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"idea-transformer/internal/plugin"
	"idea-transformer/internal/schema"
)

const entryPoint = "run"

// ErrNoEntryPoint is returned when a script does not define run.
var ErrNoEntryPoint = errors.New("script does not define a global run function")

// Host compiles Lua scripts into plugins.
type Host struct{}

// NewHost returns a Host.
func NewHost() *Host {
	return &Host{}
}

var _ plugin.ScriptHost = (*Host)(nil)

// Compile parses source and evaluates its top level in a fresh state.
func (h *Host) Compile(ctx context.Context, path string, source []byte) (plugin.Plugin, error) {
	chunk, err := parse.Parse(bytes.NewReader(source), path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	p := &scriptPlugin{path: path, state: lua.NewState(), order: make(map[*lua.LTable][]string)}
	p.state.SetContext(ctx)
	p.installIdea()

	p.state.Push(p.state.NewFunctionFromProto(proto))

	err = p.state.PCall(0, lua.MultRet, nil)
	p.state.RemoveContext()

	if err != nil {
		p.state.Close()
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}

	fn, ok := p.state.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		p.state.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoEntryPoint)
	}

	p.run = fn

	return p, nil
}

type scriptPlugin struct {
	mu    sync.Mutex
	path  string
	state *lua.LState
	run   *lua.LFunction
	// order remembers the declared key order of tables built from ordered
	// maps.
	order map[*lua.LTable][]string
}

// Run calls the script's run function. A Lua error, or a run that returns
// false or nil plus a message, fails the plugin.
func (p *scriptPlugin) Run(ctx context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *plugin.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	L := p.state
	L.SetContext(ctx)

	defer L.RemoveContext()

	clear(p.order)

	args := []lua.LValue{
		p.toLua(schema.Encode(s)),
		p.toLua(schema.EncodePlugin(cfg)),
		p.contextTable(pc),
	}

	err := L.CallByParam(lua.P{Fn: p.run, NRet: 2, Protect: true}, args...)
	if err != nil {
		return fmt.Errorf("running %s: %w", p.path, err)
	}

	ok, msg := L.Get(-2), L.Get(-1)
	L.Pop(2)

	if ok == lua.LFalse || (ok == lua.LNil && msg != lua.LNil) {
		return fmt.Errorf("%s: %s", p.path, msg.String())
	}

	return nil
}

// Close releases the Lua state.
func (p *scriptPlugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Close()

	return nil
}

func (p *scriptPlugin) installIdea() {
	L := p.state

	idea := L.NewTable()
	idea.RawSetString("keys", L.NewFunction(p.luaKeys))
	L.SetGlobal("idea", idea)
}

// luaKeys implements idea.keys(tbl).
func (p *scriptPlugin) luaKeys(L *lua.LState) int {
	tbl := L.CheckTable(1)

	out := L.NewTable()

	if keys, ok := p.order[tbl]; ok {
		for _, k := range keys {
			// Keys removed by the script are skipped.
			if tbl.RawGetString(k) != lua.LNil {
				out.Append(lua.LString(k))
			}
		}

		L.Push(out)

		return 1
	}

	for _, k := range sortedKeys(tbl) {
		out.Append(k)
	}

	L.Push(out)

	return 1
}

func (p *scriptPlugin) contextTable(pc *plugin.Context) *lua.LTable {
	L := p.state

	tbl := L.NewTable()
	tbl.RawSetString("cwd", lua.LString(pc.Cwd))
	tbl.RawSetString("schema_dir", lua.LString(pc.SchemaDir))

	tbl.RawSetString("resolve", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(pc.Resolve(L.CheckString(1))))
		return 1
	}))

	tbl.RawSetString("write", L.NewFunction(func(L *lua.LState) int {
		path, content := L.CheckString(1), L.CheckString(2)

		full, err := pc.WriteFile(path, []byte(content))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}

		L.Push(lua.LString(full))

		return 1
	}))

	tbl.RawSetString("log", L.NewFunction(func(L *lua.LState) int {
		if pc.Logger != nil {
			pc.Logger.InfoContext(L.Context(), L.CheckString(1), "script", p.path)
		}

		return 0
	}))

	return tbl
}
