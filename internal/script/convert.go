package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/attachevents/internal/behavior"
)

// toSpec converts t to a spec. A table reached again while it is still
// being converted becomes nil, which breaks reference cycles while letting
// tables shared by sibling keys convert normally.
func (e *Engine) toSpec(t *lua.LTable, visited map[*lua.LTable]bool) behavior.Spec {
	visited[t] = true
	defer delete(visited, t)

	spec := make(behavior.Spec)
	t.ForEach(func(k, v lua.LValue) {
		spec[k.String()] = e.toValue(v, visited)
	})
	return spec
}

func (e *Engine) toValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		return e.toSpec(v, visited)
	case *lua.LFunction:
		return e.action(v)
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}
