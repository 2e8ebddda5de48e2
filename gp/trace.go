package gp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Trace stream layout, before compression:
//
//	magic   [8]byte "GPTRACE\x00"
//	version uint16
//	count   uint32
//	count x (record, data[record.DataLen])
//
// All integers are little-endian. The stream is zstd-compressed as a whole.
var traceMagic = [8]byte{'G', 'P', 'T', 'R', 'A', 'C', 'E', 0}

const (
	traceVersion = 1

	// maxTraceData bounds a single upload payload.
	maxTraceData = 64 << 20
)

type traceHeader struct {
	Magic   [8]byte
	Version uint16
	Count   uint32
}

type traceRecord struct {
	Kind       uint8
	Flags      uint32
	BPP        int32
	DstStride  int32
	SrcStride  int32
	Code       uint8
	Color      uint32
	Source     uint8
	Operation  uint8
	Mode       uint8
	Channel    uint8
	Apply      uint8
	Alpha      uint8
	Dst        uint32
	Src        uint32
	Width      int32
	Height     int32
	Dir        uint32
	Mask       uint32
	MaskStride int32
	FourBPP    uint8
	Pitch      int32
	DataLen    uint32
}

func recordOf(c *Command) traceRecord {
	rec := traceRecord{
		Kind:       uint8(c.Kind),
		Flags:      uint32(c.Flags),
		BPP:        int32(c.BPP),
		DstStride:  int32(c.DstStride),
		SrcStride:  int32(c.SrcStride),
		Code:       c.Code,
		Color:      c.Color,
		Source:     uint8(c.Source),
		Operation:  uint8(c.Operation),
		Mode:       uint8(c.Mode),
		Channel:    uint8(c.Channel),
		Apply:      uint8(c.Apply),
		Alpha:      c.Alpha,
		Dst:        c.Dst,
		Src:        c.Src,
		Width:      int32(c.Width),
		Height:     int32(c.Height),
		Dir:        uint32(c.Dir),
		Mask:       c.Mask,
		MaskStride: int32(c.MaskStride),
		Pitch:      int32(c.Pitch),
		DataLen:    uint32(len(c.Data)),
	}
	if c.FourBPP {
		rec.FourBPP = 1
	}
	return rec
}

func (rec *traceRecord) command() Command {
	return Command{
		Kind:       Kind(rec.Kind),
		Flags:      BltFlags(rec.Flags),
		BPP:        int(rec.BPP),
		DstStride:  int(rec.DstStride),
		SrcStride:  int(rec.SrcStride),
		Code:       rec.Code,
		Color:      rec.Color,
		Source:     SourceFormat(rec.Source),
		Operation:  AlphaOp(rec.Operation),
		Mode:       AlphaMode(rec.Mode),
		Channel:    Channel(rec.Channel),
		Apply:      ApplyScope(rec.Apply),
		Alpha:      rec.Alpha,
		Dst:        rec.Dst,
		Src:        rec.Src,
		Width:      int(rec.Width),
		Height:     int(rec.Height),
		Dir:        Direction(rec.Dir),
		Mask:       rec.Mask,
		MaskStride: int(rec.MaskStride),
		FourBPP:    rec.FourBPP != 0,
		Pitch:      int(rec.Pitch),
	}
}

// WriteTrace writes cmds to w as a compressed trace.
func WriteTrace(w io.Writer, cmds []Command) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	hdr := traceHeader{Magic: traceMagic, Version: traceVersion, Count: uint32(len(cmds))}
	if err := binary.Write(enc, binary.LittleEndian, &hdr); err != nil {
		enc.Close()
		return err
	}
	for i := range cmds {
		rec := recordOf(&cmds[i])
		if err := binary.Write(enc, binary.LittleEndian, &rec); err != nil {
			enc.Close()
			return err
		}
		if _, err := enc.Write(cmds[i].Data); err != nil {
			enc.Close()
			return err
		}
	}
	return enc.Close()
}

// ReadTrace reads a trace written by WriteTrace.
func ReadTrace(r io.Reader) ([]Command, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, badTrace(err)
	}
	defer dec.Close()

	var hdr traceHeader
	if err := binary.Read(dec, binary.LittleEndian, &hdr); err != nil {
		return nil, badTrace(err)
	}
	if hdr.Magic != traceMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadTrace, hdr.Magic[:])
	}
	if hdr.Version != traceVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadTrace, hdr.Version)
	}

	cmds := make([]Command, 0, min(hdr.Count, 1<<16))
	for i := uint32(0); i < hdr.Count; i++ {
		var rec traceRecord
		if err := binary.Read(dec, binary.LittleEndian, &rec); err != nil {
			return nil, badTrace(err)
		}
		if rec.Kind == 0 || rec.Kind > uint8(KindWaitUntilIdle) {
			return nil, fmt.Errorf("%w: record %d has kind %d", ErrBadTrace, i, rec.Kind)
		}
		if rec.DataLen > maxTraceData {
			return nil, fmt.Errorf("%w: record %d carries %d bytes", ErrBadTrace, i, rec.DataLen)
		}
		c := rec.command()
		if rec.DataLen > 0 {
			c.Data = make([]byte, rec.DataLen)
			if _, err := io.ReadFull(dec, c.Data); err != nil {
				return nil, badTrace(err)
			}
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func badTrace(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated", ErrBadTrace)
	}
	return fmt.Errorf("%w: %w", ErrBadTrace, err)
}
