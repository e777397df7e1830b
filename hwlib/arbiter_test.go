package hwlib_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arbVectors(table [][2]uint64) []hwtest.Vector {
	vs := make([]hwtest.Vector, len(table))
	for i, r := range table {
		vs[i] = hwtest.Vector{
			In:  map[string]uint64{"reqs": r[0]},
			Out: map[string]uint64{"grants": r[1]},
		}
	}
	return vs
}

func arbEnVectors(table [][3]uint64) []hwtest.Vector {
	vs := make([]hwtest.Vector, len(table))
	for i, r := range table {
		vs[i] = hwtest.Vector{
			In:  map[string]uint64{"en": r[0], "reqs": r[1]},
			Out: map[string]uint64{"grants": r[2]},
		}
	}
	return vs
}

func TestRoundRobinArbiter(t *testing.T) {
	c, err := rtlsim.NewCircuit(hl.RoundRobinArbiter("arb", 4))
	require.NoError(t, err)

	hwtest.RunVectors(t, c, arbVectors([][2]uint64{
		// reqs   grants
		{0b0000, 0b0000},

		{0b0001, 0b0001},
		{0b0010, 0b0010},
		{0b0100, 0b0100},
		{0b1000, 0b1000},

		{0b1111, 0b0001},
		{0b1111, 0b0010},
		{0b1111, 0b0100},
		{0b1111, 0b1000},
		{0b1111, 0b0001},

		{0b1100, 0b0100},
		{0b1010, 0b1000},
		{0b1001, 0b0001},
		{0b0110, 0b0010},
		{0b0101, 0b0100},
		{0b0011, 0b0001},

		{0b1110, 0b0010},
		{0b1101, 0b0100},
		{0b1011, 0b1000},
		{0b0111, 0b0001},
	}))
}

func TestRoundRobinArbiterEn(t *testing.T) {
	c, err := rtlsim.NewCircuit(hl.RoundRobinArbiterEn("arb", 4))
	require.NoError(t, err)

	hwtest.RunVectors(t, c, arbEnVectors([][3]uint64{
		// en reqs   grants
		{0, 0b0000, 0b0000},
		{1, 0b0000, 0b0000},

		{1, 0b0001, 0b0001},
		{0, 0b0010, 0b0000},
		{1, 0b0010, 0b0010},
		{1, 0b0100, 0b0100},
		{0, 0b1000, 0b0000},
		{1, 0b1000, 0b1000},

		{1, 0b1111, 0b0001},
		{0, 0b1111, 0b0000},
		{1, 0b1111, 0b0010},
		{1, 0b1111, 0b0100},
		{1, 0b1111, 0b1000},
		{0, 0b1111, 0b0000},
		{1, 0b1111, 0b0001},

		{0, 0b1100, 0b0000},
		{1, 0b1100, 0b0100},
		{0, 0b1010, 0b0000},
		{1, 0b1010, 0b1000},
		{1, 0b1001, 0b0001},
		{1, 0b0110, 0b0010},
		{1, 0b0101, 0b0100},
		{1, 0b0011, 0b0001},

		{1, 0b1110, 0b0010},
		{0, 0b1101, 0b0000},
		{1, 0b1101, 0b0100},
		{1, 0b1011, 0b1000},
		{0, 0b0111, 0b0000},
		{1, 0b0111, 0b0001},
	}))
}

func TestRoundRobinArbiter_commitNotify(t *testing.T) {
	// with commit notification, grants follow the priority register without
	// rewriting the requests.
	m := hl.RoundRobinArbiter("arb", 3)
	c, err := rtlsim.NewCircuit(m, rtlsim.WithCommitNotify(true))
	require.NoError(t, err)

	c.Write(m.Port("reqs"), 0b111)
	var grants []uint64
	for i := 0; i < 4; i++ {
		_, err = c.Settle()
		require.NoError(t, err)
		grants = append(grants, c.Read(m.Port("grants")))
		require.NoError(t, c.Step())
	}
	assert.Equal(t, []uint64{0b001, 0b010, 0b100, 0b001}, grants)
	assert.Equal(t, rtlsim.ModeRegister, c.Mode(m.Port("priority")))
}
