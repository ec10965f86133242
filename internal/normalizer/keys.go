package normalizer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// checkExactKeys rejects object keys that only match a Trip field when case
// is ignored. encoding/json would accept "DESTINATION" for "destination".
func checkExactKeys(payload json.RawMessage, t reflect.Type) error {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return schemaViolation(tripKey, err)
	}
	return exactKeys(v, t, tripKey)
}

func exactKeys(v any, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			for _, k := range keys {
				if k != name && strings.EqualFold(k, name) {
					return schemaViolation(path+"."+name, fmt.Errorf("field missing, found key %q", k))
				}
			}
			if child, ok := obj[name]; ok {
				if err := exactKeys(child, f.Type, path+"."+name); err != nil {
					return err
				}
			}
		}
	case reflect.Slice:
		arr, ok := v.([]any)
		if !ok {
			return nil
		}
		for i, item := range arr {
			if err := exactKeys(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
