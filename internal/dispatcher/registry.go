package dispatcher

import "strings"

// CommandFunc runs a command-line command. args holds the words after the
// command name.
type CommandFunc func(args []string) CommandOutcome

// Registry maps command-line names and aliases to commands.
type Registry struct {
	commands map[string]CommandFunc
	aliases  map[string]string
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandFunc),
		aliases:  make(map[string]string),
	}
}

// DefaultCommands returns a registry holding the built-in commands:
// "quit" (alias "q") requests exit.
func DefaultCommands() *Registry {
	r := NewRegistry()
	r.Register("quit", func([]string) CommandOutcome {
		return CommandOutcome{Done: true, Quit: true}
	}, "q")
	return r
}

// Register adds a command under name and any aliases.
// Registering an existing name replaces it.
func (r *Registry) Register(name string, fn CommandFunc, aliases ...string) {
	r.commands[name] = fn
	for _, alias := range aliases {
		r.aliases[alias] = name
	}
}

// Get returns the command registered under name or an alias of it.
// Returns nil if no command matches.
func (r *Registry) Get(name string) CommandFunc {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	return r.commands[name]
}

// Execute parses line and runs the named command.
// An empty line completes without effect. An unknown name completes with
// an error message.
func (r *Registry) Execute(line string) CommandOutcome {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandOutcome{Done: true}
	}

	fn := r.Get(fields[0])
	if fn == nil {
		return CommandOutcome{Done: true, Message: ErrUnknownCommand.Error() + ": " + fields[0]}
	}

	out := fn(fields[1:])
	out.Done = true
	return out
}
