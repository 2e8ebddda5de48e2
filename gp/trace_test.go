package gp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestTraceRoundTrip(t *testing.T) {
	r := NewRecorder(nil)
	issueSample(r)
	want := r.Commands()

	var buf bytes.Buffer
	if err := WriteTrace(&buf, want); err != nil {
		t.Fatalf("WriteTrace: %v", err)
	}
	got, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if !commandsEqual(got[i], want[i]) {
			t.Errorf("command %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTraceEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrace(&buf, nil); err != nil {
		t.Fatalf("WriteTrace: %v", err)
	}
	got, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("read %d commands from an empty trace", len(got))
	}
}

func compress(t *testing.T, raw []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil)
}

func TestReadTraceErrors(t *testing.T) {
	var good bytes.Buffer
	if err := WriteTrace(&good, []Command{{Kind: KindWaitUntilIdle}}); err != nil {
		t.Fatal(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(good.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}

	badMagic := append([]byte(nil), raw...)
	badMagic[0] = 'X'
	badVersion := append([]byte(nil), raw...)
	badVersion[8] = 9
	badKind := append([]byte(nil), raw...)
	badKind[14] = 0xEE

	tests := []struct {
		name string
		data []byte
	}{
		{"not zstd", []byte("definitely not a trace")},
		{"bad magic", compress(t, badMagic)},
		{"bad version", compress(t, badVersion)},
		{"bad kind", compress(t, badKind)},
		{"truncated header", compress(t, raw[:5])},
		{"truncated record", compress(t, raw[:len(raw)-3])},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTrace(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrBadTrace) {
				t.Errorf("ReadTrace error = %v, want ErrBadTrace", err)
			}
		})
	}
}
