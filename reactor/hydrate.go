package reactor

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Hydrate copies bindings onto target and keeps reactive ones live.
//
// target is a map[string]any or a pointer to a struct. Struct fields are
// matched by a `reactor:"key"` tag first, then by name ignoring case. A
// binding with a Peek() T and an OnChange(func(T)) func() method, which
// includes every State, Computed and ReactiveList, is copied now and again on
// every change; anything else is copied once. The returned cleanup stops
// every live binding. On error nothing stays subscribed.
func Hydrate(target any, bindings map[string]any) (func(), error) {
	assign, err := assigner(target)
	if err != nil {
		return nil, err
	}

	var unsubscribes []func()
	cleanup := func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
		unsubscribes = nil
	}

	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		bound := bindings[key]

		live, ok := bindingOf(bound)
		if !ok {
			if err := assign(key, bound); err != nil {
				cleanup()
				return nil, err
			}
			continue
		}

		if err := assign(key, live.peekAny()); err != nil {
			cleanup()
			return nil, err
		}
		unsubscribes = append(unsubscribes, live.onChangeAny(func(v any) {
			if err := assign(key, v); err != nil {
				panic(err)
			}
		}))
	}

	return cleanup, nil
}

type assignFunc func(key string, value any) error

func assigner(target any) (assignFunc, error) {
	switch t := target.(type) {
	case map[string]any:
		if t == nil {
			return nil, fmt.Errorf("%w: nil map", ErrInvalidTarget)
		}
		return func(key string, value any) error {
			t[key] = value
			return nil
		}, nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a map[string]any or a struct pointer", ErrInvalidTarget, target)
	}
	st := rv.Elem()

	return func(key string, value any) error {
		field, ok := fieldFor(st, key)
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrInvalidTarget, st.Type(), key)
		}
		return assignValue(field, key, value)
	}, nil
}

func fieldFor(st reflect.Value, key string) (reflect.Value, bool) {
	typ := st.Type()
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.IsExported() && f.Tag.Get("reactor") == key {
			return st.Field(i), true
		}
	}
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.IsExported() && strings.EqualFold(f.Name, key) {
			return st.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func assignValue(field reflect.Value, key string, value any) error {
	if value == nil {
		field.SetZero()
		return nil
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(field.Type()):
		field.Set(v)
	case sameClass(v.Kind(), field.Kind()) && v.Type().ConvertibleTo(field.Type()):
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("%w: can't assign %s to field %q of type %s", ErrInvalidTarget, v.Type(), key, field.Type())
	}
	return nil
}

type kindClass uint8

const (
	otherClass kindClass = iota
	intClass
	uintClass
	floatClass
)

func classOf(k reflect.Kind) kindClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intClass
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintClass
	case reflect.Float32, reflect.Float64:
		return floatClass
	default:
		return otherClass
	}
}

// sameClass allows conversion between kinds that only differ in width, like
// int to int64. Anything else must already be the same kind.
func sameClass(a, b reflect.Kind) bool {
	if a == b {
		return true
	}
	ca := classOf(a)
	return ca != otherClass && ca == classOf(b)
}

// bindingOf finds the live view of v. Types from this package implement
// binding directly; any other reactive is driven through reflection.
func bindingOf(v any) (binding, bool) {
	if b, ok := v.(binding); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	peek, onChange := rv.MethodByName("Peek"), rv.MethodByName("OnChange")
	if !peek.IsValid() || !onChange.IsValid() {
		return nil, false
	}

	pt, ot := peek.Type(), onChange.Type()
	if pt.NumIn() != 0 || pt.NumOut() != 1 || ot.NumIn() != 1 || ot.NumOut() != 1 {
		return nil, false
	}
	callback, unsubscribe := ot.In(0), ot.Out(0)
	if callback.Kind() != reflect.Func || callback.NumIn() != 1 || callback.NumOut() != 0 || callback.In(0) != pt.Out(0) {
		return nil, false
	}
	if unsubscribe.Kind() != reflect.Func || unsubscribe.NumIn() != 0 || unsubscribe.NumOut() != 0 {
		return nil, false
	}
	return reflectBinding{peek: peek, onChange: onChange, callback: callback}, true
}

type reflectBinding struct {
	peek     reflect.Value
	onChange reflect.Value
	callback reflect.Type
}

func (b reflectBinding) peekAny() any {
	return b.peek.Call(nil)[0].Interface()
}

func (b reflectBinding) onChangeAny(fn func(any)) func() {
	cb := reflect.MakeFunc(b.callback, func(args []reflect.Value) []reflect.Value {
		fn(args[0].Interface())
		return nil
	})
	unsubscribe := b.onChange.Call([]reflect.Value{cb})[0]
	if unsubscribe.IsNil() {
		return func() {}
	}
	return func() {
		unsubscribe.Call(nil)
	}
}
