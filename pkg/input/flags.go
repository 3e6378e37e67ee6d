// pkg/input/flags.go
package input

import (
	"fmt"
	"strings"
)

// KeyValueFlag implements flag.Value for repeated name=value flags.
// Values may contain '=' and commas; only the first '=' splits.
type KeyValueFlag []KeyValue

// KeyValue is one parsed name=value pair.
type KeyValue struct {
	Name  string
	Value string
}

func (f *KeyValueFlag) String() string {
	parts := make([]string, len(*f))
	for i, kv := range *f {
		parts[i] = kv.Name + "=" + kv.Value
	}
	return strings.Join(parts, ",")
}

func (f *KeyValueFlag) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", value)
	}
	*f = append(*f, KeyValue{Name: name, Value: val})
	return nil
}
