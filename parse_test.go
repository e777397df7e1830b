package rtlsim_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConnections(t *testing.T) {
	td := []struct {
		in  string
		out []rtlsim.Connection
		err string
	}{
		{"", nil, ""},
		{"  ", nil, ""},
		{"a=x", []rtlsim.Connection{{Sub: "a", Host: "x"}}, ""},
		{" a = x , b=y_1", []rtlsim.Connection{{Sub: "a", Host: "x"}, {Sub: "b", Host: "y_1"}}, ""},
		{"out=w, out=o", []rtlsim.Connection{{Sub: "out", Host: "w"}, {Sub: "out", Host: "o"}}, ""},
		{"a", nil, `in "a", item 1: expected sub=host`},
		{"a=x,b=y=z", nil, `in "a=x,b=y=z", item 2: expected sub=host`},
		{"a=x, 1b=y", nil, `in "a=x, 1b=y", item 2: invalid port name "1b"`},
		{"a=", nil, `in "a=", item 1: invalid port name ""`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			cs, err := rtlsim.ParseConnections(d.in)
			if d.err != "" {
				assert.EqualError(t, err, d.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.out, cs)
		})
	}
}

func TestModule_Mount(t *testing.T) {
	sub := rtlsim.NewModule("sub")
	sub.In("a", 4)
	sub.Out("out", 8)

	top := rtlsim.NewModule("top")
	top.In("x", 4)
	assert.Same(t, sub, top.Mount(sub, "a=x, out=y"))
	y := top.Port("y")
	assert.Equal(t, rtlsim.KindWire, y.Kind())
	assert.Equal(t, 8, y.Width())

	c, err := rtlsim.NewCircuit(top)
	require.NoError(t, err)
	assert.Equal(t, c.Cell(top.Port("x")), c.Cell(sub.Port("a")))
	assert.Equal(t, c.Cell(y), c.Cell(sub.Port("out")))

	assert.Panics(t, func() { rtlsim.NewModule("m").Mount(rtlsim.NewModule("s"), "a") })
	assert.Panics(t, func() { rtlsim.NewModule("m").Mount(rtlsim.NewModule("s"), "a=b") })
}
