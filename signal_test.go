package syncsim_test

import (
	"testing"
	"testing/quick"

	ss "github.com/db47h/syncsim"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

func TestSignal(t *testing.T) {
	if ss.Unknown.Known() || (ss.Signal{}) != ss.Unknown {
		t.Fatal("zero signal must be Unknown")
	}
	var ce *ss.ConversionError
	if _, err := ss.Unknown.Uint32(); !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if _, err := ss.Unknown.Int32(); !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}

	v, err := ss.Int(-2).Uint32()
	if err != nil || v != 0xfffffffe {
		t.Fatalf("Int(-2).Uint32() = %x, %v", v, err)
	}
	i, err := ss.Data(0x80000000).Int32()
	if err != nil || i != -0x80000000 {
		t.Fatalf("Data(0x80000000).Int32() = %d, %v", i, err)
	}
	if ss.Bool(true) != ss.Data(1) || ss.Bool(false) != ss.Data(0) {
		t.Fatal("Bool")
	}

	td := []struct {
		s   ss.Signal
		str string
		hex string
	}{
		{ss.Unknown, "-", "-"},
		{ss.Data(0), "0", "0x00000000"},
		{ss.Data(42), "42", "0x0000002a"},
		{ss.Int(-1), "4294967295", "0xffffffff"},
		{ss.Data(0x10000), "65536", "0x00010000"},
	}
	for _, d := range td {
		if s := d.s.String(); s != d.str {
			t.Errorf("String(): got %q, expected %q", s, d.str)
		}
		if s := d.s.Hex(); s != d.hex {
			t.Errorf("Hex(): got %q, expected %q", s, d.hex)
		}
	}
}

func TestSignalJSON(t *testing.T) {
	td := []struct {
		in  string
		exp ss.Signal
		err bool
	}{
		{"null", ss.Unknown, false},
		{"0", ss.Data(0), false},
		{"4294967295", ss.Data(0xffffffff), false},
		{"-1", ss.Int(-1), false},
		{"-2147483648", ss.Int(-2147483648), false},
		{"4294967296", ss.Unknown, true},
		{"-2147483649", ss.Unknown, true},
		{"1.5", ss.Unknown, true},
	}
	for _, d := range td {
		var s ss.Signal
		err := json.Unmarshal([]byte(d.in), &s)
		if (err != nil) != d.err {
			t.Errorf("%s: unexpected error status: %v", d.in, err)
			continue
		}
		if err == nil && s != d.exp {
			t.Errorf("%s: got %v, expected %v", d.in, s, d.exp)
		}
	}

	f := func(w uint32, known bool) bool {
		s := ss.Unknown
		if known {
			s = ss.Data(w)
		}
		b, err := json.Marshal(s)
		if err != nil {
			return false
		}
		var r ss.Signal
		return json.Unmarshal(b, &r) == nil && r == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestParseInput(t *testing.T) {
	in, err := ss.ParseInput(" c5 . out ")
	if err != nil || in != ss.NewInput("c5", "out") {
		t.Fatalf("got %v, %v", in, err)
	}
	if in.String() != "c5.out" {
		t.Fatalf("bad string %q", in.String())
	}
	for _, s := range []string{"", "c5", "c5.", ".out", "c5.out.x", "c5=out"} {
		if _, err := ss.ParseInput(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustParseInput did not panic")
		}
	}()
	ss.MustParseInput("bad")
}

func TestParseConnections(t *testing.T) {
	m, err := ss.ParseConnections("a=c1.out, b=c2.q")
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 || m["a"] != ss.NewInput("c1", "out") || m["b"] != ss.NewInput("c2", "q") {
		t.Fatalf("unexpected result %v", m)
	}
	if m, err = ss.ParseConnections(""); err != nil || len(m) != 0 {
		t.Fatalf("empty list: %v, %v", m, err)
	}
	if _, err = ss.ParseConnections("a=c1.out, a=c2.out"); err == nil {
		t.Fatal("expected error on duplicate port")
	}
	if _, err = ss.ParseConnections("a=c1.out b=c2.out"); err == nil {
		t.Fatal("expected syntax error")
	}
}
