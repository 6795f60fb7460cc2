package luahost

import (
	"cmp"
	"fmt"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"idea-transformer/internal/schema"
)

// toLua converts a document value to Lua. Ordered maps become tables whose
// key order is recorded for idea.keys; lists become sequences.
func (p *scriptPlugin) toLua(v any) lua.LValue {
	L := p.state

	switch val := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []any:
		tbl := L.NewTable()
		for _, item := range val {
			tbl.Append(p.toLua(item))
		}

		return tbl
	case *schema.Map[any]:
		tbl := L.NewTable()
		keys := make([]string, 0, val.Len())

		for k, item := range val.All() {
			tbl.RawSetString(k, p.toLua(item))
			keys = append(keys, k)
		}

		p.order[tbl] = keys

		return tbl
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

func sortedKeys(tbl *lua.LTable) []lua.LValue {
	var keys []lua.LValue

	tbl.ForEach(func(k, _ lua.LValue) {
		keys = append(keys, k)
	})

	slices.SortFunc(keys, func(a, b lua.LValue) int {
		return cmp.Compare(a.String(), b.String())
	})

	return keys
}
