package hwlib_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sorterVector(in, out [4]uint64) hwtest.Vector {
	v := hwtest.Vector{In: map[string]uint64{}, Out: map[string]uint64{}}
	for i := range in {
		v.In[rtlsim.BusName("in", i)] = in[i]
		v.Out[rtlsim.BusName("out", i)] = out[i]
	}
	return v
}

func TestSorter(t *testing.T) {
	for _, d := range []struct {
		name string
		new  func(string) *rtlsim.Module
	}{
		{"flat", hl.SorterFlat},
		{"structural", hl.Sorter},
	} {
		t.Run(d.name, func(t *testing.T) {
			c, err := rtlsim.NewCircuit(d.new("sorter"), rtlsim.WithCommitNotify(true))
			require.NoError(t, err)

			// two cycles of latency
			hwtest.RunVectors(t, c, []hwtest.Vector{
				sorterVector([4]uint64{3, 1, 4, 2}, [4]uint64{0, 0, 0, 0}),
				sorterVector([4]uint64{9, 8, 7, 6}, [4]uint64{0, 0, 0, 0}),
				sorterVector([4]uint64{5, 5, 0, 0xffff}, [4]uint64{1, 2, 3, 4}),
				sorterVector([4]uint64{0, 0, 0, 0}, [4]uint64{6, 7, 8, 9}),
				sorterVector([4]uint64{0, 0, 0, 0}, [4]uint64{0, 5, 5, 0xffff}),
				sorterVector([4]uint64{0, 0, 0, 0}, [4]uint64{0, 0, 0, 0}),
			})
		})
	}
}

func TestSorter_noCommitNotify(t *testing.T) {
	m := hl.SorterFlat("sorter")
	c, err := rtlsim.NewCircuit(m)
	require.NoError(t, err)

	for i, v := range []uint64{3, 1, 4, 2} {
		c.Write(m.Port(rtlsim.BusName("in", i)), v)
	}
	require.NoError(t, c.Run(3))
	_, err = c.Settle()
	require.NoError(t, err)

	// the pipeline registers are loaded but the stages never run.
	for i, v := range []uint64{3, 1, 4, 2} {
		assert.Equal(t, v, c.Read(m.Port(rtlsim.BusName("reg_AB", i))))
		assert.Zero(t, c.Read(m.Port(rtlsim.BusName("out", i))))
	}
}
