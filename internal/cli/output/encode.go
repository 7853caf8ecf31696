package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// writeJSON prints data as indented JSON. Shell metacharacters such as
// '<' and '&' are left unescaped.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// writeYAML prints data as YAML keyed by its JSON field names, so API
// types need no yaml tags.
func writeYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
