package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/tasktrack/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// SupportedFormats lists the document formats the file store understands.
func SupportedFormats() []string {
	return []string{FormatJSON, FormatYAML, FormatTOML}
}

// normalizeFormat validates an explicit format or infers one from the file
// extension when format is empty.
func normalizeFormat(format, path string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		case ".toml":
			return FormatTOML, nil
		default:
			return FormatJSON, nil
		}
	}
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
		return format, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported data format: %s. Supported formats are json, yaml, toml", format)
}

// encodeTasks serializes the collection. JSON is written as a pretty-printed
// top-level array; TOML has no top-level arrays, so it uses models.TaskList.
func encodeTasks(format string, tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(models.TaskList{Tasks: tasks}); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported data format for saving: %s", format)
}

// decodeTasks parses a document. Empty or whitespace-only input is an empty
// collection.
func decodeTasks(format string, data []byte) ([]models.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	case FormatTOML:
		var list models.TaskList
		if _, err := toml.Decode(string(data), &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
		}
		tasks = list.Tasks
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", format)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
