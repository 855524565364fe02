package config

import (
	"encoding"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	tagName    = "env"
	tagDefault = "env-default"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Read fills the tagged fields of the struct pointed to by dst from the
// process environment. Nested and embedded structs are walked. A field tagged
// `env:"NAME,required"` fails when NAME is unset; `env-default:"..."` supplies
// the value otherwise. Fields without a value and without a default are left
// alone.
func Read(dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("config: want non-nil struct pointer, got %T", dst)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("config: want struct pointer, got %T", dst)
	}
	return readStruct(v)
}

func readStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if !value.CanSet() {
			continue
		}

		tag, tagged := field.Tag.Lookup(tagName)
		if !tagged {
			if value.Kind() == reflect.Struct {
				if err := readStruct(value); err != nil {
					return err
				}
			}
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		raw, found := os.LookupEnv(name)
		if !found {
			if hasOption(opts, "required") {
				return fmt.Errorf("config: %s is required", name)
			}
			def, ok := field.Tag.Lookup(tagDefault)
			if !ok {
				continue
			}
			raw = def
		}

		if err := setValue(value, raw); err != nil {
			return fmt.Errorf("config: parse %s: %w", name, err)
		}
	}
	return nil
}

func setValue(v reflect.Value, raw string) error {
	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(raw))
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(raw, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice of %s", v.Type().Elem().Kind())
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		v.Set(reflect.ValueOf(parts).Convert(v.Type()))
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var name string
		name, opts, _ = strings.Cut(opts, ",")
		if name == want {
			return true
		}
	}
	return false
}
