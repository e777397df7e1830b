package hwlib_test

import (
	"os"
	"testing"
	"testing/quick"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

// testGate checks all combinations of the single bit inputs of m against
// result. result[o][i] is the expected value of output o for input
// combination i, with the first input as the most significant bit.
func testGate(t *testing.T, m *rtlsim.Module, result [][]uint64) {
	t.Helper()
	var inputs, outputs []*rtlsim.Port
	for _, p := range m.Ports() {
		switch p.Kind() {
		case rtlsim.KindIn:
			inputs = append(inputs, p)
		case rtlsim.KindOut:
			outputs = append(outputs, p)
		}
	}
	c, err := rtlsim.NewCircuit(m)
	if err != nil {
		t.Fatal(err)
	}
	tot := 1 << uint(len(inputs))
	for i := 0; i < tot; i++ {
		vals := make([]uint64, len(inputs))
		for bit := range inputs {
			vals[len(inputs)-bit-1] = uint64(i>>uint(bit)) & 1
		}
		for n, p := range inputs {
			c.Write(p, vals[n])
		}
		if _, err = c.Settle(); err != nil {
			t.Fatal(err)
		}
		for o, p := range outputs {
			if exp, got := result[o][i], c.Read(p); exp != got {
				t.Errorf("%s %v: %s = %d, got %d", m.Name(), vals, p.Name(), exp, got)
			}
		}
	}
}

func Test_gate(t *testing.T) {
	td := []struct {
		name   string
		gate   *rtlsim.Module
		result [][]uint64 // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", hl.Not("not", 1), [][]uint64{{1, 0}}},
		{"AND", hl.And("and", 1), [][]uint64{{0, 0, 0, 1}}},
		{"NAND", hl.Nand("nand", 1), [][]uint64{{1, 1, 1, 0}}},
		{"OR", hl.Or("or", 1), [][]uint64{{0, 1, 1, 1}}},
		{"NOR", hl.Nor("nor", 1), [][]uint64{{1, 0, 0, 0}}},
		{"XOR", hl.Xor("xor", 1), [][]uint64{{0, 1, 1, 0}}},
		{"XNOR", hl.Xnor("xnor", 1), [][]uint64{{1, 0, 0, 1}}},
		{"MUX", hl.Mux("mux", 1), [][]uint64{{0, 0, 0, 1, 1, 0, 1, 1}}},
		{"DMUX", hl.DMux("dmux", 1), [][]uint64{{0, 0, 1, 0}, {0, 0, 0, 1}}},
		{"OR3WAY", hl.OrNWay("or3", 3), [][]uint64{{0, 1, 1, 1, 1, 1, 1, 1}}},
		{"AND3WAY", hl.AndNWay("and3", 3), [][]uint64{{0, 0, 0, 0, 0, 0, 0, 1}}},
		{"HALFADDER", hl.HalfAdder("ha"), [][]uint64{{0, 1, 1, 0}, {0, 0, 0, 1}}},
		{"FULLADDER", hl.FullAdder("fa"), [][]uint64{{0, 1, 1, 0, 1, 0, 0, 1}, {0, 0, 0, 1, 0, 1, 1, 1}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

func Test_gateN(t *testing.T) {
	td := []struct {
		name string
		gate func(string, int) *rtlsim.Module
		ctrl func(a, b uint16) uint16
	}{
		{"And16", hl.And, func(a, b uint16) uint16 { return a & b }},
		{"Nand16", hl.Nand, func(a, b uint16) uint16 { return ^(a & b) }},
		{"Or16", hl.Or, func(a, b uint16) uint16 { return a | b }},
		{"Nor16", hl.Nor, func(a, b uint16) uint16 { return ^(a | b) }},
		{"Xor16", hl.Xor, func(a, b uint16) uint16 { return a ^ b }},
		{"Xnor16", hl.Xnor, func(a, b uint16) uint16 { return ^(a ^ b) }},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			m := d.gate(d.name, 16)
			c, err := rtlsim.NewCircuit(m)
			if err != nil {
				t.Fatal(err)
			}
			a, b, out := m.Port("a"), m.Port("b"), m.Port("out")
			f := func(x, y uint16) bool {
				c.Write(a, uint64(x))
				c.Write(b, uint64(y))
				if _, err := c.Settle(); err != nil {
					t.Fatal(err)
				}
				return c.Read(out) == uint64(d.ctrl(x, y))
			}
			if err = quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestNot64(t *testing.T) {
	m := hl.Not("not", 64)
	c, err := rtlsim.NewCircuit(m)
	if err != nil {
		t.Fatal(err)
	}
	f := func(x uint64) bool {
		c.Write(m.Port("in"), x)
		if _, err := c.Settle(); err != nil {
			t.Fatal(err)
		}
		return c.Read(m.Port("out")) == ^x
	}
	if err = quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestMuxMWay(t *testing.T) {
	m := hl.MuxMWay("mux4", 4, 8)
	c, err := rtlsim.NewCircuit(m)
	if err != nil {
		t.Fatal(err)
	}
	in := m.Bus("in", 4)
	for i, p := range in {
		c.Write(p, uint64(0x10+i))
	}
	for sel := uint64(0); sel < 4; sel++ {
		c.Write(m.Port("sel"), sel)
		if _, err = c.Settle(); err != nil {
			t.Fatal(err)
		}
		if got := c.Read(m.Port("out")); got != 0x10+sel {
			t.Errorf("sel = %d: expected out = %#x, got %#x", sel, 0x10+sel, got)
		}
	}
}

func TestOutput(t *testing.T) {
	var out []uint64
	top := rtlsim.NewModule("top")
	x := top.In("x", 16)
	top.Mount(hl.Output("probe", 16, func(v uint64) { out = append(out, v) }), "in=x")
	c, err := rtlsim.NewCircuit(top)
	if err != nil {
		t.Fatal(err)
	}
	c.Write(x, 0x80a2)
	c.Write(x, 0x80a2)
	if _, err = c.Settle(); err != nil {
		t.Fatal(err)
	}
	c.Write(x, 0x1ffff)
	if _, err = c.Settle(); err != nil {
		t.Fatal(err)
	}
	expected := []uint64{0x80a2, 0xffff}
	if len(out) != len(expected) || out[0] != expected[0] || out[1] != expected[1] {
		t.Fatalf("expected %x, got %x", expected, out)
	}
}
