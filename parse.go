// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// A Connection connects the port Sub of a submodule to the port Host of its
// host module.
//
type Connection struct {
	Sub  string
	Host string
}

// ParseConnections parses a connection configuration like "a=x, b=y" into a
// slice of Connection{Sub: "a", Host: "x"}, Connection{Sub: "b", Host: "y"}.
//
// The same sub port may appear more than once in order to connect it to
// several host ports.
//
func ParseConnections(conns string) ([]Connection, error) {
	var out []Connection
	if strings.TrimSpace(conns) == "" {
		return nil, nil
	}
	for pos, item := range strings.Split(conns, ",") {
		kv := strings.Split(item, "=")
		if len(kv) != 2 {
			return nil, errors.Errorf("in %q, item %d: expected sub=host", conns, pos+1)
		}
		sub, host := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if !isIdent(sub) {
			return nil, errors.Errorf("in %q, item %d: invalid port name %q", conns, pos+1, sub)
		}
		if !isIdent(host) {
			return nil, errors.Errorf("in %q, item %d: invalid port name %q", conns, pos+1, host)
		}
		out = append(out, Connection{Sub: sub, Host: host})
	}
	return out, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Mount adds sub as a submodule of m and connects its ports as described by
// conns (see ParseConnections). Host ports that do not exist in m are created
// as wires with the same width as the sub port they connect to.
//
// Mount panics if conns is malformed or names a port that sub does not have.
//
// For example, a 4 bits register with load enable can be mounted like this:
//
//	top.Mount(hwlib.RegEn("r", 4, 0), "in=d, load=ld, out=q")
//
func (m *Module) Mount(sub *Module, conns string) *Module {
	cs, err := ParseConnections(conns)
	if err != nil {
		panic(err)
	}
	m.Add(sub)
	for _, c := range cs {
		sp := sub.Port(c.Sub)
		hp, ok := m.byName[c.Host]
		if !ok {
			hp = m.Wire(c.Host, sp.Width())
		}
		Connect(sp, hp)
	}
	return sub
}
