package core

import (
	"fmt"
	"strings"

	"apt-archives/internal/types"
)

// UnmarshalRepositories converts the host build tool's package-repositories
// configuration (a list of maps) into typed repository values. A nil input
// yields no repositories; anything that is not a list of objects is
// rejected.
func UnmarshalRepositories(data any) ([]types.Repository, error) {
	if data == nil {
		return nil, nil
	}
	items, err := asList(data)
	if err != nil {
		return nil, err
	}
	repositories := make([]types.Repository, 0, len(items))
	for _, item := range items {
		entry, ok := asMap(item)
		if !ok {
			return nil, validationError(fmt.Sprintf("%v", item),
				"invalid object. Package repository must be a valid dictionary object.")
		}
		repository, err := UnmarshalRepository(entry)
		if err != nil {
			return nil, err
		}
		repositories = append(repositories, repository)
	}
	return repositories, nil
}

// UnmarshalRepository decides the repository variant before construction:
// a "ppa" key selects the PPA variant, a "cloud" key the UCA variant, and
// everything else the plain apt variant. The chosen variant is validated
// as part of construction.
func UnmarshalRepository(data map[string]any) (types.Repository, error) {
	if data == nil {
		return nil, validationError("", "invalid object. Package repository must be a valid dictionary object.")
	}
	if _, ok := lookup(data, "ppa"); ok {
		return unmarshalPPA(data)
	}
	if _, ok := lookup(data, "cloud"); ok {
		return unmarshalUCA(data)
	}
	return unmarshalApt(data)
}

func unmarshalApt(data map[string]any) (types.Repository, error) {
	ident, _ := stringField(data, "url")
	if err := rejectUnknownKeys(data, ident, "type", "priority", "url", "key_id",
		"key_server", "architectures", "formats", "path", "components", "suites"); err != nil {
		return nil, err
	}
	if err := checkType(data, ident); err != nil {
		return nil, err
	}
	priority, err := priorityField(data, ident)
	if err != nil {
		return nil, err
	}
	repo := types.AptRepository{Priority: priority}
	repo.URL = strings.TrimRight(ident, "/")
	repo.KeyID, _ = stringField(data, "key_id")
	repo.KeyServer, _ = stringField(data, "key_server")
	repo.Path, _ = stringField(data, "path")
	if repo.Architectures, err = stringListField(data, "architectures", ident); err != nil {
		return nil, err
	}
	if repo.Components, err = stringListField(data, "components", ident); err != nil {
		return nil, err
	}
	if repo.Suites, err = stringListField(data, "suites", ident); err != nil {
		return nil, err
	}
	formats, err := stringListField(data, "formats", ident)
	if err != nil {
		return nil, err
	}
	for _, format := range formats {
		repo.Formats = append(repo.Formats, types.SourceFormat(format))
	}
	if path, ok := lookup(data, "path"); ok {
		if text, isString := path.(string); !isString || text == "" {
			return nil, validationError(ident, "invalid path. Paths must be non-empty strings.")
		}
	}
	if err := ValidateRepository(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func unmarshalPPA(data map[string]any) (types.Repository, error) {
	ident, _ := stringField(data, "ppa")
	if err := rejectUnknownKeys(data, ident, "type", "priority", "ppa"); err != nil {
		return nil, err
	}
	if err := checkType(data, ident); err != nil {
		return nil, err
	}
	priority, err := priorityField(data, ident)
	if err != nil {
		return nil, err
	}
	repo := types.PPARepository{Priority: priority, PPA: ident}
	if err := ValidateRepository(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func unmarshalUCA(data map[string]any) (types.Repository, error) {
	ident, _ := stringField(data, "cloud")
	if err := rejectUnknownKeys(data, ident, "type", "priority", "cloud", "pocket"); err != nil {
		return nil, err
	}
	if err := checkType(data, ident); err != nil {
		return nil, err
	}
	priority, err := priorityField(data, ident)
	if err != nil {
		return nil, err
	}
	pocket, _ := stringField(data, "pocket")
	if pocket == "" {
		pocket = string(types.DefaultPocket)
	}
	repo := types.UCARepository{
		Priority: priority,
		Cloud:    ident,
		Pocket:   types.Pocket(pocket),
	}
	if err := ValidateRepository(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func checkType(data map[string]any, ident string) error {
	raw, ok := lookup(data, "type")
	if !ok {
		return validationError(ident, "missing type. The only currently supported type is 'apt'.")
	}
	if text, isString := raw.(string); !isString || text != "apt" {
		return validationError(ident,
			fmt.Sprintf("unsupported type %v. The only currently supported type is 'apt'.", raw))
	}
	return nil
}

// priorityField converts the optional priority value: the semantic aliases
// map to their apt Preferences values, integers pass through, and an
// explicit zero is rejected.
func priorityField(data map[string]any, ident string) (int, error) {
	raw, ok := lookup(data, "priority")
	if !ok {
		return 0, nil
	}
	switch value := raw.(type) {
	case int:
		if value == 0 {
			return 0, validationError(ident, "invalid priority: Priority cannot be zero.")
		}
		return value, nil
	case string:
		switch value {
		case "always":
			return types.PriorityAlways, nil
		case "prefer":
			return types.PriorityPrefer, nil
		case "defer":
			return types.PriorityDefer, nil
		}
	}
	return 0, validationError(ident, fmt.Sprintf(
		"invalid priority %v. Priority must be 'always', 'prefer', 'defer' or a nonzero integer.", raw))
}

// lookup finds a configuration key accepting both the internal underscored
// name and its hyphenated external alias.
func lookup(data map[string]any, name string) (any, bool) {
	if value, ok := data[name]; ok {
		return value, true
	}
	alias := strings.ReplaceAll(name, "_", "-")
	if value, ok := data[alias]; ok {
		return value, true
	}
	return nil, false
}

func stringField(data map[string]any, name string) (string, bool) {
	raw, ok := lookup(data, name)
	if !ok {
		return "", false
	}
	text, isString := raw.(string)
	return text, isString
}

func stringListField(data map[string]any, name string, ident string) ([]string, error) {
	raw, ok := lookup(data, name)
	if !ok {
		return nil, nil
	}
	var out []string
	switch values := raw.(type) {
	case []string:
		out = append(out, values...)
	case []any:
		for _, value := range values {
			text, isString := value.(string)
			if !isString {
				return nil, validationError(ident,
					fmt.Sprintf("invalid %s value %v. Expected a list of strings.", name, value))
			}
			out = append(out, text)
		}
	default:
		return nil, validationError(ident,
			fmt.Sprintf("invalid %s value %v. Expected a list of strings.", name, raw))
	}
	return out, nil
}

func rejectUnknownKeys(data map[string]any, ident string, known ...string) error {
	allowed := make(map[string]struct{}, len(known)*2)
	for _, name := range known {
		allowed[name] = struct{}{}
		allowed[strings.ReplaceAll(name, "_", "-")] = struct{}{}
	}
	for key := range data {
		if _, ok := allowed[key]; !ok {
			return validationError(ident, fmt.Sprintf("unsupported field '%s'.", key))
		}
	}
	return nil
}

func asList(data any) ([]any, error) {
	switch values := data.(type) {
	case []any:
		return values, nil
	case []map[string]any:
		items := make([]any, len(values))
		for i, value := range values {
			items[i] = value
		}
		return items, nil
	default:
		return nil, validationError(fmt.Sprintf("%v", data),
			"invalid list object. Package repositories must be a list of objects.")
	}
}

func asMap(item any) (map[string]any, bool) {
	switch value := item.(type) {
	case map[string]any:
		return value, true
	default:
		return nil, false
	}
}
