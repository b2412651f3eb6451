// Package catalog holds the reference list of standard DOM event type names.
//
// The catalog is informative only. The binder never consults it; lint,
// documentation and completion do.
package catalog

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// standard is the recognized event list in reference order, deduplicated.
var standard = [...]string{
	"abort", "afterprint", "animationend", "animationiteration",
	"animationstart", "audioprocess", "beforeprint", "beforeunload",
	"beginEvent", "blocked", "blur", "cached", "canplay", "canplaythrough",
	"change", "chargingchange", "chargingtimechange", "checking", "click",
	"close", "complete", "compositionend", "compositionstart",
	"compositionupdate", "contextmenu", "copy", "cut", "dblclick",
	"devicelight", "devicemotion", "deviceorientation", "deviceproximity",
	"dischargingtimechange", "DOMActivate", "DOMAttributeNameChanged",
	"DOMAttrModified", "DOMCharacterDataModified", "DOMContentLoaded",
	"DOMElementNameChanged", "DOMNodeInserted", "DOMNodeInsertedIntoDocument",
	"DOMNodeRemoved", "DOMNodeRemovedFromDocument", "DOMSubtreeModified",
	"downloading", "drag", "dragend", "dragenter", "dragleave", "dragover",
	"dragstart", "drop", "durationchange", "emptied", "ended",
	"endEvent", "error", "focus",
	"fullscreenchange", "fullscreenerror", "gamepadconnected",
	"gamepaddisconnected", "gotpointercapture", "hashchange",
	"lostpointercapture", "input", "invalid", "keydown", "keypress", "keyup",
	"languagechange", "levelchange", "load", "loadeddata",
	"loadedmetadata", "loadend", "loadstart", "message",
	"mousedown", "mouseenter", "mouseleave", "mousemove",
	"mouseout", "mouseover", "mouseup", "notificationclick", "noupdate",
	"obsolete", "offline", "online", "open", "orientationchange",
	"pagehide", "pageshow", "paste", "pause", "pointercancel", "pointerdown",
	"pointerenter", "pointerleave", "pointerlockchange", "pointerlockerror",
	"pointermove", "pointerout", "pointerover", "pointerup", "play", "playing",
	"popstate", "progress", "push", "pushsubscriptionchange",
	"ratechange", "readystatechange", "repeatEvent", "reset", "resize",
	"scroll", "seeked", "seeking", "select", "selectstart", "selectionchange",
	"show", "stalled", "storage", "submit", "success", "suspend", "SVGAbort",
	"SVGError", "SVGLoad", "SVGResize", "SVGScroll", "SVGUnload", "SVGZoom",
	"timeout", "timeupdate", "touchcancel", "touchend", "touchenter",
	"touchleave", "touchmove", "touchstart", "transitionend", "unload",
	"updateready", "upgradeneeded", "userproximity", "versionchange",
	"visibilitychange", "volumechange", "waiting", "wheel",
}

var index = func() map[string]int {
	m := make(map[string]int, len(standard))
	for i, name := range standard {
		m[name] = i
	}
	return m
}()

// source adapts the catalog for fuzzy matching.
type source struct{}

func (source) String(i int) string { return standard[i] }
func (source) Len() int            { return len(standard) }

// Names returns a copy of the catalog in reference order.
func Names() []string {
	out := make([]string, len(standard))
	copy(out, standard[:])
	return out
}

// Len returns the number of catalogued event types.
func Len() int {
	return len(standard)
}

// Contains reports whether name is a catalogued event type. Matching is
// case-sensitive, as event types are.
func Contains(name string) bool {
	_, ok := index[name]
	return ok
}

// WithPrefix returns the catalogued names starting with prefix, sorted.
func WithPrefix(prefix string) []string {
	var out []string
	for _, name := range standard {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns up to limit catalogued names that fuzzily match name,
// best first. A limit <= 0 returns every match.
func Suggest(name string, limit int) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.FindFrom(name, source{})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
