package schema

import (
	"errors"
	"reflect"
	"testing"

	"go.bytecodealliance.org/wit"

	pcerrors "github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/transcoder"
	"github.com/wippyai/postcard/wire"
)

type SensorReading struct {
	SensorID string
	Value    float32
	Samples  []uint16
	Raw      []byte
	Note     *string
	Where    [2]int32
	Level    Level
}

type Level uint8

type Command interface{ isCommand() }

type Stop struct{}
type Move struct{ DX, DY int16 }
type Say struct{ Text string }

func (Stop) isCommand() {}
func (Move) isCommand() {}
func (Say) isCommand()  {}

type Node struct {
	Val  int32
	Next *Node
}

type Meters struct{ V uint32 }

type Opaque uint32

func (o Opaque) MarshalPostcard(s wire.Serializer) error { return s.SerializeU32(uint32(o)) }

func testCompiler(t *testing.T) *transcoder.Compiler {
	t.Helper()
	c := transcoder.NewCompiler()
	if err := c.RegisterEnum(reflect.TypeFor[Command](), Stop{}, Move{}, Say{}); err != nil {
		t.Fatal(err)
	}
	if err := c.RegisterUnitEnum(reflect.TypeFor[Level](), "Low", "High"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFormat(t *testing.T) {
	c := testCompiler(t)

	tests := []struct {
		goType reflect.Type
		want   string
	}{
		{reflect.TypeFor[uint16](), "u16"},
		{reflect.TypeFor[int64](), "s64"},
		{reflect.TypeFor[transcoder.Char](), "char"},
		{reflect.TypeFor[[]byte](), "list<u8>"},
		{reflect.TypeFor[*string](), "option<string>"},
		{reflect.TypeFor[struct{}](), "tuple<>"},
		{reflect.TypeFor[[3]bool](), "tuple<bool, bool, bool>"},
		{reflect.TypeFor[Meters](), "type meters = u32"},
		{reflect.TypeFor[Level](), "enum level { low, high }"},
		{
			reflect.TypeFor[SensorReading](),
			"record sensor-reading { sensor-id: string, value: f32, samples: list<u16>, raw: list<u8>, " +
				"note: option<string>, where: tuple<s32, s32>, level: level }",
		},
		{reflect.TypeFor[Command](), "variant command { stop, move(move), say(string) }"},
		{reflect.TypeFor[Node](), "record node { val: s32, next: option<node> }"},
		{reflect.TypeFor[[]Command](), "list<command>"},
	}

	for _, tt := range tests {
		t.Run(tt.goType.String(), func(t *testing.T) {
			wt, err := Of(c, tt.goType)
			if err != nil {
				t.Fatalf("Of: %v", err)
			}
			if got := Format(wt); got != tt.want {
				t.Errorf("Format = %q\nwant     %q", got, tt.want)
			}
		})
	}
}

func TestDescribe_RecursiveSharesTypeDef(t *testing.T) {
	wt, err := Of(transcoder.NewCompiler(), reflect.TypeFor[Node]())
	if err != nil {
		t.Fatal(err)
	}
	td := wt.(*wit.TypeDef)
	rec := td.Kind.(*wit.Record)
	opt := rec.Fields[1].Type.(*wit.TypeDef).Kind.(*wit.Option)
	if opt.Type != td {
		t.Error("recursive field should point at the enclosing TypeDef")
	}
}

func TestDescribe_Unsupported(t *testing.T) {
	c := transcoder.NewCompiler()

	tests := []struct {
		name   string
		goType reflect.Type
	}{
		{"unregistered interface", reflect.TypeFor[Command]()},
		{"interface in struct", reflect.TypeFor[struct{ Cmd any }]()},
		{"custom codec", reflect.TypeFor[Opaque]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Of(c, tt.goType)
			if !errors.Is(err, pcerrors.ErrUnsupported) {
				t.Errorf("error = %v, want Unsupported", err)
			}
		})
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"Reading":     "reading",
		"SensorID":    "sensor-id",
		"HTTPServer":  "http-server",
		"DX":          "dx",
		"value":       "value",
		"snake_case":  "snake-case",
		"GetHTTPURL":  "get-httpurl",
		"ParseJSONV2": "parse-jsonv2",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}
