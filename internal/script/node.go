package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/attachevents/internal/dom"
)

const nodeTypeName = "attachevents.node"

func (e *Engine) registerNodeType() {
	L := e.L
	methods := map[string]lua.LGFunction{
		"tag":      nodeTag,
		"id":       nodeID,
		"text":     nodeText,
		"set_text": nodeSetText,
		"attr":     nodeAttr,
		"set_attr": nodeSetAttr,
		"query":    e.nodeQuery,
	}
	mt := L.NewTypeMetatable(nodeTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), methods))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		n := checkNode(L)
		if el, ok := n.(dom.Element); ok {
			L.Push(lua.LString(el.TagName()))
			return 1
		}
		L.Push(lua.LString(nodeTypeName))
		return 1
	}))
}

// nodeValue returns the userdata for n, creating it on first use.
func (e *Engine) nodeValue(n dom.Node) lua.LValue {
	if n == nil {
		return lua.LNil
	}
	if ud, ok := e.nodes[n]; ok {
		return ud
	}
	ud := e.L.NewUserData()
	ud.Value = n
	e.L.SetMetatable(ud, e.L.GetTypeMetatable(nodeTypeName))
	e.nodes[n] = ud
	return ud
}

// eventTable exposes ev to Lua. stop and prevent act on ev itself.
func (e *Engine) eventTable(ev *dom.Event) *lua.LTable {
	L := e.L
	t := L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type))
	t.RawSetString("which", lua.LNumber(ev.Which))
	t.RawSetString("key", lua.LString(ev.Key))
	t.RawSetString("target", e.nodeValue(ev.Target))
	t.RawSetString("stop", L.NewFunction(func(*lua.LState) int {
		ev.StopPropagation()
		return 0
	}))
	t.RawSetString("prevent", L.NewFunction(func(*lua.LState) int {
		ev.PreventDefault()
		return 0
	}))
	return t
}

func checkNode(L *lua.LState) dom.Node {
	ud := L.CheckUserData(1)
	n, ok := ud.Value.(dom.Node)
	if !ok {
		L.ArgError(1, "node expected")
		return nil
	}
	return n
}

func checkElement(L *lua.LState) (dom.Element, bool) {
	el, ok := checkNode(L).(dom.Element)
	return el, ok
}

func nodeTag(L *lua.LState) int {
	el, ok := checkElement(L)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(el.TagName()))
	return 1
}

func nodeID(L *lua.LState) int {
	el, ok := checkElement(L)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(el.ID()))
	return 1
}

func nodeText(L *lua.LState) int {
	el, ok := checkElement(L)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(el.TextContent()))
	return 1
}

func nodeSetText(L *lua.LState) int {
	text := L.CheckString(2)
	if el, ok := checkElement(L); ok {
		el.SetTextContent(text)
	}
	return 0
}

func nodeAttr(L *lua.LState) int {
	name := L.CheckString(2)
	el, ok := checkElement(L)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	v, ok := el.Attribute(name)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(v))
	return 1
}

func nodeSetAttr(L *lua.LState) int {
	name := L.CheckString(2)
	value := L.CheckString(3)
	if el, ok := checkElement(L); ok {
		el.SetAttribute(name, value)
	}
	return 0
}

// nodeQuery returns the first descendant matching the selector, or nil.
func (e *Engine) nodeQuery(L *lua.LState) int {
	n := checkNode(L)
	sel := L.CheckString(2)
	found, err := n.QuerySelector(sel)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(e.nodeValue(found))
	return 1
}
