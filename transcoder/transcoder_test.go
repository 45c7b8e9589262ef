package transcoder

import (
	"reflect"
	"testing"

	"github.com/wippyai/postcard/wire"
)

type Reading struct {
	Sensor  string
	Value   float32
	Valid   bool
	Samples []uint16
	Note    *string
}

type Meters struct{ V uint32 }

type Marker struct{}

type Pair [2]int16

type Command interface{ isCommand() }

type Stop struct{}

type Move struct{ X, Y int16 }

type Say struct{ Text string }

type Jump struct{ Height uint8 }

func (Stop) isCommand()  {}
func (Move) isCommand()  {}
func (Say) isCommand()   {}
func (*Jump) isCommand() {}

type Script struct {
	Name  string
	Steps []Command
	Final Command
}

type Level uint8

const (
	Low Level = iota
	Mid
	High
)

type Node struct {
	Val  int32
	Next *Node
}

type Tree struct {
	Label    string
	Children []Tree
}

type Skipped struct {
	Keep   uint8
	Drop   uint8 `postcard:"-"`
	hidden uint8
	Tail   uint8
}

// Color encodes as three bytes rather than a u32.
type Color uint32

func (c Color) MarshalPostcard(s wire.Serializer) error {
	for _, shift := range []uint{16, 8, 0} {
		if err := s.SerializeU8(uint8(c >> shift)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Color) UnmarshalPostcard(d wire.Deserializer) error {
	var v uint32
	for i := 0; i < 3; i++ {
		b, err := d.DeserializeU8()
		if err != nil {
			return err
		}
		v = v<<8 | uint32(b)
	}
	*c = Color(v)
	return nil
}

type Theme struct {
	Fg, Bg Color
}

func newTestCompiler(t testing.TB) *Compiler {
	t.Helper()
	c := NewCompiler()
	if err := c.RegisterEnum(reflect.TypeFor[Command](), Stop{}, Move{}, Say{}, &Jump{}); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}
	if err := c.RegisterUnitEnum(reflect.TypeFor[Level](), "Low", "Mid", "High"); err != nil {
		t.Fatalf("RegisterUnitEnum: %v", err)
	}
	return c
}

func encodeBytes(t testing.TB, e *Encoder, v any) []byte {
	t.Helper()
	s := wire.NewSliceSink(nil)
	if err := e.Encode(wire.NewWriter(s), v); err != nil {
		t.Fatalf("Encode(%T): %v", v, err)
	}
	return s.Bytes()
}

func strPtr(s string) *string { return &s }
