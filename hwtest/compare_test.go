package hwtest_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
)

func customOr() *rtlsim.Module {
	m := rtlsim.NewModule("custom_or")
	m.In("a", 1)
	m.In("b", 1)
	m.Out("out", 1)
	m.Mount(hl.Nand("nand0", 1), "a=a, b=a, out=notA")
	m.Mount(hl.Nand("nand1", 1), "a=b, b=b, out=notB")
	m.Mount(hl.Nand("nand2", 1), "a=notA, b=notB, out=out")
	return m
}

func TestComparePart(t *testing.T) {
	hwtest.ComparePart(t, 16, func() *rtlsim.Module { return hl.Or("or", 1) }, customOr)
}

func TestComparePart_sequential(t *testing.T) {
	hwtest.ComparePart(t, 64,
		func() *rtlsim.Module { return hl.SorterFlat("flat") },
		func() *rtlsim.Module { return hl.Sorter("structural") },
		rtlsim.WithCommitNotify(true))
}
