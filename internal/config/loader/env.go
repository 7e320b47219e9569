package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvKind is the type an environment variable is decoded as.
type EnvKind int

const (
	EnvString EnvKind = iota
	EnvInt
)

// EnvVar names the config key a variable sets and how its value is read.
type EnvVar struct {
	Key  string // dotted, e.g. "log.level"
	Kind EnvKind
}

// EnvLoader reads configuration from environment variables.
type EnvLoader struct {
	vars   map[string]EnvVar
	lookup func(string) (string, bool)
}

func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

func NewEnvLoaderWithMapping(vars map[string]EnvVar) *EnvLoader {
	return &EnvLoader{vars: vars, lookup: os.LookupEnv}
}

// DefaultEnvMapping lists the variables keyline reads.
func DefaultEnvMapping() map[string]EnvVar {
	return map[string]EnvVar{
		"KEYLINE_LOG_LEVEL":  {Key: "log.level"},
		"KEYLINE_LOG_FILE":   {Key: "log.file"},
		"KEYLINE_SCROLL_OFF": {Key: "editor.scroll_off", Kind: EnvInt},
	}
}

// WithLookup replaces os.LookupEnv.
func (l *EnvLoader) WithLookup(lookup func(string) (string, bool)) *EnvLoader {
	l.lookup = lookup
	return l
}

// Load returns the set variables as a nested map. A variable set to the
// empty string counts as set. EnvInt variables become int64 and must hold
// an integer; every other value stays a string, digits included.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for name, v := range l.vars {
		raw, ok := l.lookup(name)
		if !ok {
			continue
		}

		var val any = raw
		if v.Kind == EnvInt {
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s=%q: want an integer", name, raw)
			}
			val = n
		}
		setKey(out, v.Key, val)
	}
	return out, nil
}

// setKey stores val under a dotted key, creating intermediate maps.
func setKey(m map[string]any, key string, val any) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		m[key] = val
		return
	}

	child, ok := m[head].(map[string]any)
	if !ok {
		child = make(map[string]any)
		m[head] = child
	}
	setKey(child, rest, val)
}
