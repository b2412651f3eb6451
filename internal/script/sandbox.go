package script

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals are base library functions that load code from outside
// the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
}

// safeModules may be passed to require.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// openSandbox opens the permitted libraries and removes everything else.
func openSandbox(L *lua.LState, out *outputWriter) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		out.println(strings.Join(parts, "\t"))
		return 0
	}))
}

// outputWriter receives print output and remembers the last line.
type outputWriter struct {
	w    io.Writer
	last string
}

func (o *outputWriter) println(line string) {
	o.last = line
	_, _ = io.WriteString(o.w, line+"\n")
}
