package macro

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileEntry is one row of the macro file. Exactly one of replace or
// action must be set.
type fileEntry struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
	Action  string `yaml:"action"`
}

// LoadTable reads an ordered macro table from a YAML file. A missing file
// is not an error and yields an empty table, so the tool works out of the
// box without one.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read macro file: %w", err)
	}

	var rows []fileEntry
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse macro file: %w", err)
	}

	table := NewTable()
	for i, row := range rows {
		if row.Match == "" {
			return nil, fmt.Errorf("macro entry %d: missing match", i)
		}
		if Normalize(row.Match) == "" {
			return nil, fmt.Errorf("macro entry %d: match '%s' normalizes to nothing", i, row.Match)
		}
		switch {
		case row.Action != "" && row.Replace != "":
			return nil, fmt.Errorf("macro entry %d: both replace and action set", i)
		case row.Action != "":
			fn, err := LookupAction(row.Action)
			if err != nil {
				return nil, fmt.Errorf("macro entry %d: %w", i, err)
			}
			table.AddAction(row.Match, row.Action, fn)
		default:
			table.AddReplace(row.Match, row.Replace)
		}
	}
	return table, nil
}
