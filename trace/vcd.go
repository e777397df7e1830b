// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VCDSink writes a Value Change Dump. One clock cycle is one time unit.
//
type VCDSink struct {
	w      *bufio.Writer
	c      io.Closer
	scope  string
	ids    []string
	widths []int
}

// NewVCDSink returns a new VCD sink writing to w. If w is an io.Closer, it is
// closed by Close. Signals are declared in a module named scope.
//
func NewVCDSink(w io.Writer, scope string) *VCDSink {
	s := &VCDSink{w: bufio.NewWriter(w), scope: scope}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

// vcdID returns the identifier code for signal i, using the printable ASCII
// characters '!' to '~'.
func vcdID(i int) string {
	const base = '~' - '!' + 1
	var b []byte
	for {
		b = append(b, byte('!'+i%base))
		i /= base
		if i == 0 {
			break
		}
		i--
	}
	return string(b)
}

// Begin implements Sink.
//
func (s *VCDSink) Begin(signals []Signal) error {
	s.ids = make([]string, len(signals))
	s.widths = make([]int, len(signals))
	s.w.WriteString("$timescale 1ns $end\n")
	s.w.WriteString("$scope module " + s.scope + " $end\n")
	for i, sig := range signals {
		s.ids[i] = vcdID(i)
		s.widths[i] = sig.Width
		name := strings.TrimPrefix(sig.Name, s.scope+".")
		s.w.WriteString("$var wire " + strconv.Itoa(sig.Width) + " " + s.ids[i] + " " + name + " $end\n")
	}
	s.w.WriteString("$upscope $end\n$enddefinitions $end\n")
	return errors.Wrap(s.w.Flush(), "vcd header")
}

// Record implements Sink.
//
func (s *VCDSink) Record(cycle uint64, changes []Change) error {
	s.w.WriteByte('#')
	s.w.WriteString(strconv.FormatUint(cycle, 10))
	s.w.WriteByte('\n')
	for _, c := range changes {
		if s.widths[c.Signal] == 1 {
			s.w.WriteString(strconv.FormatUint(c.Value&1, 10))
		} else {
			s.w.WriteByte('b')
			s.w.WriteString(strconv.FormatUint(c.Value, 2))
			s.w.WriteByte(' ')
		}
		s.w.WriteString(s.ids[c.Signal])
		s.w.WriteByte('\n')
	}
	return errors.Wrapf(s.w.Flush(), "vcd cycle %d", cycle)
}

// Close implements Sink.
//
func (s *VCDSink) Close() error {
	err := s.w.Flush()
	if s.c != nil {
		if cerr := s.c.Close(); err == nil {
			err = cerr
		}
	}
	return errors.Wrap(err, "close vcd")
}
