package models

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// savestate format
//
// file header
// uint32(savestate format version)
// uint32(crc32 of compressed data)
// uint32(length of compressed data)
// remainder is a snappy block
//
// -- uncompressed data start --
// uint16(len(arch)), arch name
// uint64(base address), uint64(current address)
// uint32(number of registers), uint64(memory image length)
// 1..num: uint32(register enum), uint64(low bits), uint64(high bits)
// <raw memory image>

const StateVersion = 1

type stateHeader struct {
	Version uint32
	Crc     uint32
	Length  uint32
}

type stateMeta struct {
	ArchLen int `struc:"uint16,sizeof=Arch"`
	Arch    string
	Base    uint64
	Addr    uint64
	NumRegs uint32
	MemLen  uint64
}

type SavedReg struct {
	Enum uint32
	Val  uint64
	Hi   uint64
}

type State struct {
	Arch string
	Base uint64
	Addr uint64
	Regs []SavedReg
	Mem  []byte
}

type strucStream struct {
	Stream io.ReadWriter
	Order  binary.ByteOrder
}

func (s *strucStream) Pack(vals ...interface{}) error {
	for _, v := range vals {
		if err := struc.PackWithOrder(s.Stream, v, s.Order); err != nil {
			return err
		}
	}
	return nil
}

func (s *strucStream) Unpack(vals ...interface{}) error {
	for _, v := range vals {
		if err := struc.UnpackWithOrder(s.Stream, v, s.Order); err != nil {
			return err
		}
	}
	return nil
}

func (st *State) Save() ([]byte, error) {
	var body bytes.Buffer
	s := &strucStream{&body, binary.BigEndian}
	meta := &stateMeta{
		Arch:    st.Arch,
		Base:    st.Base,
		Addr:    st.Addr,
		NumRegs: uint32(len(st.Regs)),
		MemLen:  uint64(len(st.Mem)),
	}
	if err := s.Pack(meta); err != nil {
		return nil, errors.Wrap(err, "packing savestate header")
	}
	for i := range st.Regs {
		if err := s.Pack(&st.Regs[i]); err != nil {
			return nil, errors.Wrap(err, "packing registers")
		}
	}
	body.Write(st.Mem)

	data := snappy.Encode(nil, body.Bytes())
	var out bytes.Buffer
	s = &strucStream{&out, binary.BigEndian}
	hdr := &stateHeader{StateVersion, crc32.ChecksumIEEE(data), uint32(len(data))}
	if err := s.Pack(hdr); err != nil {
		return nil, err
	}
	out.Write(data)
	return out.Bytes(), nil
}

func LoadState(p []byte) (*State, error) {
	in := bytes.NewBuffer(p)
	s := &strucStream{in, binary.BigEndian}
	var hdr stateHeader
	if err := s.Unpack(&hdr); err != nil {
		return nil, errors.Wrap(err, "reading savestate header")
	}
	if hdr.Version != StateVersion {
		return nil, errors.Errorf("unsupported savestate version %d", hdr.Version)
	}
	data := in.Bytes()
	if uint32(len(data)) != hdr.Length {
		return nil, errors.Errorf("savestate length mismatch: %d != %d", len(data), hdr.Length)
	}
	if crc32.ChecksumIEEE(data) != hdr.Crc {
		return nil, errors.New("savestate checksum mismatch")
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing savestate")
	}
	body := bytes.NewBuffer(raw)
	s = &strucStream{body, binary.BigEndian}
	var meta stateMeta
	if err := s.Unpack(&meta); err != nil {
		return nil, errors.Wrap(err, "reading savestate metadata")
	}
	st := &State{Arch: meta.Arch, Base: meta.Base, Addr: meta.Addr}
	st.Regs = make([]SavedReg, meta.NumRegs)
	for i := range st.Regs {
		if err := s.Unpack(&st.Regs[i]); err != nil {
			return nil, errors.Wrap(err, "reading registers")
		}
	}
	if uint64(body.Len()) != meta.MemLen {
		return nil, errors.Errorf("savestate memory is %d bytes, expected %d", body.Len(), meta.MemLen)
	}
	st.Mem = body.Bytes()
	return st, nil
}
