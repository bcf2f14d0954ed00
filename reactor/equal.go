package reactor

import "reflect"

// identical is strict equality: comparable values compare with ==, while
// slices, maps and funcs compare by identity. Two distinct slices holding the
// same elements are different values. Structs and arrays holding any of
// those compare field by field under the same rules.
func identical[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == nil && vb == nil
	}

	ra, rb := reflect.ValueOf(va), reflect.ValueOf(vb)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Comparable() && rb.Comparable() {
		return va == vb
	}
	return identicalValues(ra, rb)
}

// identicalValues compares two values of the same type.
func identicalValues(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Slice:
		return a.Len() == b.Len() && a.UnsafePointer() == b.UnsafePointer()
	case reflect.Map, reflect.Func:
		return a.UnsafePointer() == b.UnsafePointer()
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !identicalValues(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !identicalValues(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && identicalValues(ea, eb)
	default:
		if !a.CanInterface() {
			return identicalUnexported(a, b)
		}
		return a.Interface() == b.Interface()
	}
}

// identicalUnexported compares scalar fields reached through unexported
// struct fields, which reflect won't hand back as interfaces.
func identicalUnexported(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return a.UnsafePointer() == b.UnsafePointer()
	default:
		return false
	}
}
