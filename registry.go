// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var registry = struct {
	sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}{
	byName: make(map[string]reflect.Type),
	byType: make(map[reflect.Type]string),
}

// RegisterType registers the concrete type of proto for persistence. The
// type is saved under its Go type name, and loading a store creates a new
// zero value of that type before decoding it.
//
// proto must be a pointer to a struct; a nil pointer is fine:
//
//	syncsim.RegisterType((*Adder)(nil))
//
// RegisterType panics if the type is not a pointer to a struct or if another
// type was already registered under the same name. It is meant to be called
// from init functions.
//
func RegisterType(proto Component) {
	typ := reflect.TypeOf(proto)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported component type %v", typ))
	}
	typ = typ.Elem()
	name := typ.Name()

	registry.Lock()
	defer registry.Unlock()
	if t, ok := registry.byName[name]; ok && t != typ {
		panic(errors.Errorf("component type name %q already registered for %v", name, t))
	}
	registry.byName[name] = typ
	registry.byType[typ] = name
}

// RegisteredTypes returns the sorted list of registered type names.
//
func RegisteredTypes() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for n := range registry.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func typeName(c Component) (string, error) {
	typ := reflect.TypeOf(c)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	registry.RLock()
	name, ok := registry.byType[typ]
	registry.RUnlock()
	if !ok {
		return "", errors.Errorf("component type %v not registered", typ)
	}
	return name, nil
}

func newComponent(name string) (Component, error) {
	registry.RLock()
	typ, ok := registry.byName[name]
	registry.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown component type %q", name)
	}
	return reflect.New(typ).Interface().(Component), nil
}
