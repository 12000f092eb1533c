package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// applyEnvOverrides walks cfg and replaces every field tagged `env:"NAME"`
// with the value of $NAME when that variable is set. Nested section
// structs are walked recursively; untagged fields are left alone.
func applyEnvOverrides(cfg interface{}) error {
	section := reflect.ValueOf(cfg)
	if section.Kind() == reflect.Ptr {
		section = section.Elem()
	}
	if section.Kind() != reflect.Struct {
		return nil
	}

	sectionType := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := sectionType.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		name, tagged := meta.Tag.Lookup("env")
		if !tagged || name == "" {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}

		if !field.CanAddr() || !field.CanSet() {
			return fmt.Errorf("config field %s cannot be overridden", meta.Name)
		}
		if err := assignEnv(field.Addr().Interface(), raw); err != nil {
			return fmt.Errorf("env %s -> %s: %w", name, meta.Name, err)
		}
	}
	return nil
}

// assignEnv parses raw into the value target points at. The supported
// targets are the field types the Config sections actually use.
func assignEnv(target interface{}, raw string) error {
	switch dst := target.(type) {
	case *string:
		*dst = raw

	case *int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", raw, err)
		}
		*dst = n

	case *time.Duration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		*dst = d

	case *bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", raw, err)
		}
		*dst = b

	case *float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", raw, err)
		}
		*dst = f

	case *[]string:
		// comma-separated; blank items are dropped
		items := make([]string, 0)
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		*dst = items

	default:
		return fmt.Errorf("unsupported field type %T", target)
	}
	return nil
}
