package varconf

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses a varconf document and stores the result in the value
// pointed to by v. If v is not a pointer to a struct, Unmarshal returns an
// error.
//
// Unmarshal uses struct tags to map document names to struct fields:
//   - `varconf:"name"` - maps the name "name" to this struct field
//   - `varconf:"name,omitempty"` - leaves the field alone if the value is empty
//   - `varconf:"name,required"` - fails if the name is missing
//   - `varconf:"-"` - ignores this field
//
// Example:
//
//	type Config struct {
//	    Host    string   `varconf:"host"`
//	    Port    int      `varconf:"port"`
//	    Enabled bool     `varconf:"enabled"`
//	    Tags    []string `varconf:"tags"`
//	    Database struct {
//	        Host string `varconf:"host"`
//	        Port int    `varconf:"port"`
//	    } `varconf:"database"`
//	}
func Unmarshal(data []byte, v any) error {
	doc, err := Parse(string(data))
	if err != nil {
		return err
	}
	return UnmarshalDocument(doc, v)
}

// UnmarshalDocument unmarshals a parsed Document into v.
func UnmarshalDocument(doc *Document, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal target must be a pointer to struct")
	}

	return unmarshalStruct(&doc.Table, elem)
}

// unmarshalStruct unmarshals a table into a struct value
func unmarshalStruct(data *Table, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		tag := field.Tag.Get("varconf")
		if tag == "-" {
			continue
		}

		tagName, opts := parseTag(tag)
		tagged := tagName != ""
		if !tagged {
			tagName = field.Name
		}

		value, ok := lookupField(data, tagName, tagged)
		if !ok {
			if hasOption(opts, "required") {
				return fmt.Errorf("required field %s not found", tagName)
			}
			continue
		}

		if hasOption(opts, "omitempty") && isEmpty(value) {
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// lookupField finds name exactly. Untagged fields fall back to a
// case-insensitive match.
func lookupField(data *Table, name string, tagged bool) (Value, bool) {
	if v, ok := data.Get(name); ok {
		return v, true
	}
	if tagged {
		return nil, false
	}
	for key, v := range data.All() {
		if strings.EqualFold(key, name) {
			return v, true
		}
	}
	return nil, false
}

// setField stores value into field, converting between compatible kinds.
func setField(field reflect.Value, value Value) error {
	if value == nil {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		return setString(field, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(field, value)
	case reflect.Float32, reflect.Float64:
		return setFloat(field, value)
	case reflect.Bool:
		return setBool(field, value)
	case reflect.Slice:
		return setSlice(field, value)
	case reflect.Map:
		return setMap(field, value)
	case reflect.Struct:
		return setStruct(field, value)
	case reflect.Ptr:
		return setPointer(field, value)
	case reflect.Interface:
		if field.NumMethod() == 0 {
			field.Set(reflect.ValueOf(ToAny(value)))
			return nil
		}
		if reflect.TypeOf(value).Implements(field.Type()) {
			field.Set(reflect.ValueOf(value))
			return nil
		}
		return fmt.Errorf("cannot convert %s to %s", value.Kind(), field.Type())
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

func setString(field reflect.Value, value Value) error {
	s, ok := Printed(value)
	if !ok {
		return fmt.Errorf("cannot convert %s to string", value.Kind())
	}
	field.SetString(s)
	return nil
}

func setInt(field reflect.Value, value Value) error {
	n, ok := value.(Integer)
	if !ok {
		return fmt.Errorf("cannot convert %s to int", value.Kind())
	}
	if field.OverflowInt(int64(n)) {
		return fmt.Errorf("value %d overflows %s", n, field.Type())
	}
	field.SetInt(int64(n))
	return nil
}

func setUint(field reflect.Value, value Value) error {
	n, ok := value.(Integer)
	if !ok {
		return fmt.Errorf("cannot convert %s to uint", value.Kind())
	}
	if n < 0 || field.OverflowUint(uint64(n)) {
		return fmt.Errorf("value %d overflows %s", n, field.Type())
	}
	field.SetUint(uint64(n))
	return nil
}

func setFloat(field reflect.Value, value Value) error {
	n, ok := value.(Integer)
	if !ok {
		return fmt.Errorf("cannot convert %s to float", value.Kind())
	}
	field.SetFloat(float64(n))
	return nil
}

func setBool(field reflect.Value, value Value) error {
	b, ok := value.(Boolean)
	if !ok {
		return fmt.Errorf("cannot convert %s to bool", value.Kind())
	}
	field.SetBool(bool(b))
	return nil
}

func setSlice(field reflect.Value, value Value) error {
	list, ok := value.(Array)
	if !ok {
		return fmt.Errorf("cannot convert %s to slice", value.Kind())
	}
	slice := reflect.MakeSlice(field.Type(), len(list), len(list))
	for i, item := range list {
		if err := setField(slice.Index(i), item); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	field.Set(slice)
	return nil
}

func setMap(field reflect.Value, value Value) error {
	table, ok := value.(*Table)
	if !ok {
		return fmt.Errorf("cannot convert %s to map", value.Kind())
	}
	if field.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("map key type must be string, got %s", field.Type().Key())
	}
	m := reflect.MakeMapWithSize(field.Type(), table.Len())
	for key, val := range table.All() {
		elemValue := reflect.New(field.Type().Elem()).Elem()
		if err := setField(elemValue, val); err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(field.Type().Key()), elemValue)
	}
	field.Set(m)
	return nil
}

func setStruct(field reflect.Value, value Value) error {
	table, ok := value.(*Table)
	if !ok {
		return fmt.Errorf("cannot convert %s to struct", value.Kind())
	}
	return unmarshalStruct(table, field)
}

func setPointer(field reflect.Value, value Value) error {
	ptr := reflect.New(field.Type().Elem())
	if err := setField(ptr.Elem(), value); err != nil {
		return err
	}
	field.Set(ptr)
	return nil
}

// Helper functions

func parseTag(tag string) (string, []string) {
	name, rest, found := strings.Cut(tag, ",")
	if !found {
		return name, nil
	}
	return name, strings.Split(rest, ",")
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}

func isEmpty(value Value) bool {
	switch v := value.(type) {
	case nil:
		return true
	case String:
		return v == ""
	case Integer:
		return v == 0
	case Boolean:
		return !bool(v)
	case Array:
		return len(v) == 0
	case *Table:
		return v.Len() == 0
	default:
		return false
	}
}
