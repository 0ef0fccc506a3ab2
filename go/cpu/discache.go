package cpu

import (
	"bytes"

	"github.com/scare-emu/scare/go/models"
)

// cache size before the whole map is dropped
const discacheMax = 4096

type discacheEntry struct {
	mem []byte
	dis []models.Ins
}

// discache memoizes disassembly by address and exact byte contents.
type discache struct {
	cache map[uint64]*discacheEntry
}

func (d *discache) Get(addr uint64, mem []byte) []models.Ins {
	if ent, ok := d.cache[addr]; ok && bytes.Equal(mem, ent.mem) {
		return ent.dis
	}
	return nil
}

func (d *discache) Put(addr uint64, mem []byte, dis []models.Ins) {
	if d.cache == nil || len(d.cache) >= discacheMax {
		d.cache = make(map[uint64]*discacheEntry)
	}
	d.cache[addr] = &discacheEntry{append([]byte(nil), mem...), dis}
}
