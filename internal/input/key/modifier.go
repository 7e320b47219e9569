package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

// Modifier bits. ModNone is the empty set.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt  // Option on macOS
	ModMeta // Cmd on macOS
)

// modifierInfo describes how one modifier bit is written.
type modifierInfo struct {
	mod     Modifier
	long    string   // "Ctrl" in "Ctrl+S"
	short   string   // "C" in "<C-s>"
	aliases []string // extra lowercase spellings accepted by ModifierFromName
}

// modifierTable lists the modifiers in display order.
var modifierTable = [...]modifierInfo{
	{ModCtrl, "Ctrl", "C", []string{"control"}},
	{ModAlt, "Alt", "A", []string{"option", "opt"}},
	{ModShift, "Shift", "S", nil},
	{ModMeta, "Meta", "D", []string{"m", "cmd", "super"}},
}

// Has reports whether every bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the long form joined with "+", e.g. "Ctrl+Alt".
func (m Modifier) String() string {
	return m.join("+", func(info modifierInfo) string { return info.long })
}

// short returns the Vim form of the modifiers, e.g. "C-A-".
// Modifiers in skip are left out.
func (m Modifier) short(skip Modifier) string {
	s := m.Without(skip).join("-", func(info modifierInfo) string { return info.short })
	if s == "" {
		return ""
	}
	return s + "-"
}

func (m Modifier) join(sep string, name func(modifierInfo) string) string {
	var b strings.Builder
	for _, info := range modifierTable {
		if !m.Has(info.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(name(info))
	}
	return b.String()
}

// ModifierFromName looks up a modifier by its long name, its one-letter
// Vim name or an alias, ignoring case. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	name = strings.TrimSpace(name)
	for _, info := range modifierTable {
		if strings.EqualFold(name, info.long) || strings.EqualFold(name, info.short) {
			return info.mod
		}
		for _, alias := range info.aliases {
			if strings.EqualFold(name, alias) {
				return info.mod
			}
		}
	}
	return ModNone
}
