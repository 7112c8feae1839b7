package process

import (
	"fmt"
	"sort"
	"strings"
)

// ProcessConfig declares an external command.
// Arguments may contain {placeholders} that are filled in by Expand.
type ProcessConfig struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Environment map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// Empty reports whether no command is declared.
func (c ProcessConfig) Empty() bool {
	return strings.TrimSpace(c.Command) == ""
}

// Expand returns a copy with every {key} in the arguments replaced by vars[key].
func (c ProcessConfig) Expand(vars map[string]string) ProcessConfig {
	out := c
	out.Args = make([]string, len(c.Args))
	for i, arg := range c.Args {
		for k, v := range vars {
			arg = strings.ReplaceAll(arg, "{"+k+"}", v)
		}
		out.Args[i] = arg
	}
	return out
}

// String renders the command line for progress output.
func (c ProcessConfig) String() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// MergeEnv overlays the declared Environment on base without mutating either.
func (c ProcessConfig) MergeEnv(base map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(c.Environment))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range c.Environment {
		merged[k] = v
	}
	return merged
}

// EnvList flattens an environment map into KEY=VALUE pairs with a stable order.
func EnvList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(list)
	return list
}

// EnvMap parses KEY=VALUE pairs (as returned by os.Environ) into a map.
func EnvMap(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}
