// Package output writes show/show-bump results in the supported formats:
// plain key=value pairs, JSON, and YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// WriteJSON renders the variable map as an indented JSON object followed by
// a trailing newline.
func WriteJSON(w io.Writer, variables map[string]string) error {
	data, err := json.MarshalIndent(variables, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling variables to JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteYAML writes all variables as YAML to the writer.
func WriteYAML(w io.Writer, variables map[string]string) error {
	data, err := yaml.Marshal(variables)
	if err != nil {
		return fmt.Errorf("marshaling variables to YAML: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing YAML output: %w", err)
	}
	return nil
}

// WriteVariable prints the bare value of one variable. Unknown names are an
// error rather than empty output so scripts fail loudly.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteVariables writes the named variables as name=value lines. A single
// name prints its bare value.
func WriteVariables(w io.Writer, variables map[string]string, names []string) error {
	if len(names) == 1 {
		return WriteVariable(w, variables, names[0])
	}
	for _, name := range names {
		val, ok := variables[name]
		if !ok {
			return fmt.Errorf("unknown variable %q", name)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, val); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll prints every variable as a key=value line, sorted by key for
// stable output.
func WriteAll(w io.Writer, variables map[string]string) error {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, variables[k]); err != nil {
			return err
		}
	}
	return nil
}
