package converter

import (
	"fmt"
	"reflect"
	"strconv"
)

// toNames turns the accepted name shapes into a list of strings.
func toNames(names any) ([]string, error) {
	switch v := names.(type) {
	case nil:
		return nil, fmt.Errorf("nil names: %w", ErrTypeArgument)
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case fmt.Stringer:
		return []string{v.String()}, nil
	}

	rv := reflect.ValueOf(names)
	if s, ok := scalarString(rv); ok {
		return []string{s}, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, rv.Len())
		for i := range out {
			s, ok := scalarString(rv.Index(i))
			if !ok {
				return nil, fmt.Errorf("element %d of %T: %w", i, names, ErrTypeArgument)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%T: %w", names, ErrTypeArgument)
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

func scalarString(rv reflect.Value) (string, bool) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Type().Implements(stringerType) && rv.CanInterface() {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		return rv.Interface().(fmt.Stringer).String(), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}
