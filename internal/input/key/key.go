package key

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key. Printable characters are all KeyRune, with
// the character carried in Event.Rune.
type Key uint16

const (
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyRune
)

// keyInfo is how a special key is written. short is the Vim spelling used
// between angle brackets when it differs from name.
type keyInfo struct {
	name    string
	short   string
	aliases []string
}

var keyInfos = map[Key]keyInfo{
	KeyNone:      {name: "None"},
	KeyEscape:    {name: "Escape", short: "Esc"},
	KeyEnter:     {name: "Enter", short: "CR", aliases: []string{"return"}},
	KeyTab:       {name: "Tab"},
	KeyBackspace: {name: "Backspace", short: "BS"},
	KeyDelete:    {name: "Delete", short: "Del"},
	KeyInsert:    {name: "Insert", aliases: []string{"ins"}},
	KeyHome:      {name: "Home"},
	KeyEnd:       {name: "End"},
	KeyPageUp:    {name: "PageUp", aliases: []string{"pgup"}},
	KeyPageDown:  {name: "PageDown", aliases: []string{"pgdn"}},
	KeyUp:        {name: "Up"},
	KeyDown:      {name: "Down"},
	KeyLeft:      {name: "Left"},
	KeyRight:     {name: "Right"},
	KeyRune:      {name: "Rune"},
}

// keysByName indexes every spelling of every nameable key, lowercased.
var keysByName = map[string]Key{}

func init() {
	for k := KeyF1; k <= KeyF12; k++ {
		keyInfos[k] = keyInfo{name: fmt.Sprintf("F%d", k-KeyF1+1)}
	}
	for k, info := range keyInfos {
		if k == KeyNone || k == KeyRune {
			continue
		}
		keysByName[strings.ToLower(info.name)] = k
		if info.short != "" {
			keysByName[strings.ToLower(info.short)] = k
		}
		for _, alias := range info.aliases {
			keysByName[alias] = k
		}
	}
}

func (k Key) String() string {
	if info, ok := keyInfos[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// notation is the name used for k inside "<...>".
func (k Key) notation() string {
	if info := keyInfos[k]; info.short != "" {
		return info.short
	}
	return k.String()
}

// KeyFromName looks up a special key by name, Vim name or alias, ignoring
// case and surrounding space. Unknown names give KeyNone.
func KeyFromName(name string) Key {
	return keysByName[strings.ToLower(strings.TrimSpace(name))]
}
