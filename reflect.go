// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom modules built using reflection must
// implement. See MakeModule.
//
type Updater interface {
	Update(*Circuit)
}

// Clocked is implemented by custom modules that react to the clock edge. See
// MakeModule.
//
type Clocked interface {
	OnClockEdge(*Circuit)
}

var portType = reflect.TypeOf((*Port)(nil))

type field struct {
	index int
	kind  string
	name  string
	width int
	bus   int // bus length, 0 for a single port
}

// MakeModule returns a new module built from a new instance of the struct
// type of proto. Ports are identified by field tags.
//
// Fields must be of type *Port or arrays of *Port for buses. The field tag
// must be `rtl:"kind"` or `rtl:"kind,width"` or `rtl:"kind,width,name"` where
// kind is one of in, out, wire or reg. By default, the port width is 1 and the
// port name is the field name in lowercase. Fields tagged reg are wires marked
// as registers with a reset value of 0.
//
// The Update method of the new instance is registered as a combinational
// reaction sensitive to all in ports. If the struct implements Clocked, its
// OnClockEdge method is registered as a clock-edge reaction.
//
// MakeModule panics if a field tag or type is invalid.
//
func MakeModule(name string, proto Updater) *Module {
	typ := reflect.TypeOf(proto)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	v := reflect.New(typ)
	e := v.Elem()
	m := NewModule(name)
	var senses []*Port
	for _, f := range fields(typ) {
		fv := e.Field(f.index)
		decl := func(name string) *Port {
			switch f.kind {
			case "in":
				p := m.In(name, f.width)
				senses = append(senses, p)
				return p
			case "out":
				return m.Out(name, f.width)
			case "reg":
				p := m.Wire(name, f.width)
				m.Register(p, 0)
				return p
			default:
				return m.Wire(name, f.width)
			}
		}
		if f.bus == 0 {
			fv.Set(reflect.ValueOf(decl(f.name)))
			continue
		}
		for i := 0; i < f.bus; i++ {
			fv.Index(i).Set(reflect.ValueOf(decl(BusName(f.name, i))))
		}
	}

	u := v.Interface().(Updater)
	m.Combinational(typ.Name(), u.Update, senses...)
	if c, ok := u.(Clocked); ok {
		m.OnClockEdge(typ.Name(), c.OnClockEdge)
	}
	return m
}

func fields(typ reflect.Type) []field {
	var fs []field
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("rtl")
		if !ok {
			continue
		}
		fd := field{index: i, name: strings.ToLower(f.Name), width: 1}
		tv := strings.Split(tag, ",")
		switch len(tv) {
		case 3:
			if tv[2] != "" {
				fd.name = tv[2]
			}
			fallthrough
		case 2:
			w, err := strconv.Atoi(tv[1])
			if err != nil || w <= 0 || w > MaxWidth {
				panic(errors.Errorf("invalid width in tag %q for field %q in %q", tag, f.Name, typ.Name()))
			}
			fd.width = w
			fallthrough
		case 1:
			switch tv[0] {
			case "in", "out", "wire", "reg":
				fd.kind = tv[0]
			default:
				panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
			}
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		if ft.Kind() == reflect.Array && ft.Elem() == portType {
			fd.bus = ft.Len()
		} else if ft != portType {
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
		fs = append(fs, fd)
	}
	return fs
}
