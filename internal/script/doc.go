// Package script loads behavior specs from Lua.
//
// A behaviors file is a Lua chunk that either returns a table or assigns
// the global `behaviors`. Nested tables become nested specs and functions
// become actions:
//
//	return {
//	  h1 = {
//	    click = function(this, ev)
//	      this:set_text("clicked")
//	    end,
//	  },
//	  o = function(this, ev)
//	    print("pressed " .. ev.key)
//	  end,
//	}
//
// Actions receive the bound node as userdata with the methods tag, id,
// text, set_text, attr, set_attr and query, and the event as a table with
// the fields type, which, key and target plus the functions stop and
// prevent.
//
// The state is sandboxed: only the base, table, string and math libraries
// are available, the chunk loading functions are removed, require resolves
// only those libraries, and print writes to the engine's output.
//
// gopher-lua's LState is not goroutine-safe. Engine serializes all access
// with a mutex, so actions must not be invoked re-entrantly from inside
// another action.
package script
