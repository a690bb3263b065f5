package logger

import "sync"

// named holds loggers registered under a component name. A name with no
// registration resolves to the global logger tagged with that name.
var named sync.Map // map[string]*Logger

// Register makes l the logger returned by Get(name).
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Unregister removes the logger registered under name.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger registered under name, or the global logger with
// its component set to name.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
