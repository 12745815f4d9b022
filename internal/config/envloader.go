package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/xcoder-tools/dlcheck/internal/naming"
)

var replacementType = reflect.TypeOf(naming.Replacement{})

// LoadFromEnv overlays environment variables on cfg, which must be a pointer
// to a struct. Fields name their variable with an `env` tag; nested structs
// are walked. Unset and empty variables are skipped.
//
// List values are comma separated. Replacement lists use "from=to" pairs,
// e.g. DLCHECK_REPLACEMENTS="420p=420P,P2p=P2P".
func LoadFromEnv(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	return walkEnv(v.Elem())
}

func walkEnv(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := walkEnv(field); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := setFromEnv(field, name, value); err != nil {
			return err
		}
	}
	return nil
}

func setFromEnv(field reflect.Value, name, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q: %w", name, value, err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q: %w", name, value, err)
		}
		field.SetBool(b)
	case reflect.Slice:
		return setList(field, name, value)
	default:
		return fmt.Errorf("%s: unsupported field type %s", name, field.Type())
	}
	return nil
}

func setList(field reflect.Value, name, value string) error {
	items := splitList(value)

	switch elem := field.Type().Elem(); {
	case elem.Kind() == reflect.String:
		field.Set(reflect.ValueOf(items))
	case elem == replacementType:
		reps := make([]naming.Replacement, 0, len(items))
		for _, item := range items {
			from, to, ok := strings.Cut(item, "=")
			if !ok || from == "" {
				return fmt.Errorf("%s: replacement %q is not a from=to pair", name, item)
			}
			reps = append(reps, naming.Replacement{From: from, To: to})
		}
		field.Set(reflect.ValueOf(reps))
	default:
		return fmt.Errorf("%s: unsupported list type %s", name, field.Type())
	}
	return nil
}

// splitList splits on commas, trims items and drops empty ones.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
