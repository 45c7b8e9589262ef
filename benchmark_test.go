package postcard

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

type benchReading struct {
	Sensor  string
	Seq     uint32
	Value   float32
	Valid   bool
	Samples []uint16
	Raw     []byte
}

func benchValue() benchReading {
	samples := make([]uint16, 32)
	for i := range samples {
		samples[i] = uint16(i * 97)
	}
	return benchReading{
		Sensor:  "greenhouse/north/t1",
		Seq:     123456,
		Value:   21.75,
		Valid:   true,
		Samples: samples,
		Raw:     []byte{0x00, 0x10, 0x20, 0x30, 0x00, 0x50},
	}
}

func cborModes(b *testing.B) (cbor.EncMode, cbor.DecMode) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		b.Fatal(err)
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		b.Fatal(err)
	}
	return em, dm
}

func BenchmarkMarshal(b *testing.B) {
	v := benchValue()
	buf := make([]byte, 0, 256)

	b.Run("postcard", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out, err := AppendMarshal(buf[:0], v)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(out)))
		}
	})

	b.Run("cbor", func(b *testing.B) {
		em, _ := cborModes(b)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out, err := em.Marshal(v)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(out)))
		}
	})
}

func BenchmarkUnmarshal(b *testing.B) {
	v := benchValue()

	b.Run("postcard", func(b *testing.B) {
		data, err := Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportMetric(float64(len(data)), "wire-bytes")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var out benchReading
			if err := Unmarshal(data, &out); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cbor", func(b *testing.B) {
		em, dm := cborModes(b)
		data, err := em.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportMetric(float64(len(data)), "wire-bytes")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var out benchReading
			if err := dm.Unmarshal(data, &out); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkMarshalCOBS(b *testing.B) {
	v := benchValue()
	buf := make([]byte, 0, 256)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := AppendMarshalCOBS(buf[:0], v); err != nil {
			b.Fatal(err)
		}
	}
}

// TestSmallerThanCBOR pins the size advantage that motivates the format.
func TestSmallerThanCBOR(t *testing.T) {
	v := benchValue()
	pc, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		t.Fatal(err)
	}
	cb, err := em.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(pc) >= len(cb) {
		t.Errorf("postcard %d bytes, cbor %d bytes", len(pc), len(cb))
	}
}
