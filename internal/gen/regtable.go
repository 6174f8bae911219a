// Package gen implements the generation phases of a core build. Each phase
// reads the shared descriptor, may extend it, and emits artifacts into the
// build tree; phases never remove or retype fields set by earlier phases.
package gen

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/corebuilder/internal/coredef"
)

// Reg is one row of the computed register table.
type Reg struct {
	Name       string
	Mode       coredef.CSRMode
	NBits      int
	RstVal     int
	Log2NItems int
	Addr       int
	Autoreg    bool
	Descr      string
}

// Width returns the byte width one item of the register occupies. Registers
// are byte, half-word or word sized; wider registers are rejected when the
// table is built.
func (r Reg) Width() int {
	switch {
	case r.NBits <= 8:
		return 1
	case r.NBits <= 16:
		return 2
	default:
		return 4
	}
}

// Size returns the total address span of the register in bytes.
func (r Reg) Size() int { return r.Width() << r.Log2NItems }

// RegTable is the register table produced by the CSR phase and consumed by
// the documentation phase. Rows are sorted by address.
type RegTable []Reg

// addrSpace tracks occupied byte ranges within one address space.
type addrSpace struct {
	used [][2]int // [start, end) intervals
}

func (s *addrSpace) free(start, size int) bool {
	end := start + size
	for _, iv := range s.used {
		if start < iv[1] && iv[0] < end {
			return false
		}
	}
	return true
}

func (s *addrSpace) claim(start, size int) { s.used = append(s.used, [2]int{start, start + size}) }

// spacesFor returns which address spaces a register occupies. Without
// rw_overlap every register lives in the single shared space; with overlap,
// read-only and write-only registers get independent spaces so their
// addresses may coincide.
func spacesFor(mode coredef.CSRMode, rwOverlap bool, read, write *addrSpace) []*addrSpace {
	if !rwOverlap {
		return []*addrSpace{read, write}
	}
	switch mode {
	case coredef.ModeR:
		return []*addrSpace{read}
	case coredef.ModeW:
		return []*addrSpace{write}
	default:
		return []*addrSpace{read, write}
	}
}

// BuildRegTable assigns addresses to the declared CSRs. Explicit addresses
// are validated and kept; automatic registers are packed, in declaration
// order, into the lowest free naturally-aligned slot.
func BuildRegTable(csrs []coredef.CSR, rwOverlap bool) (RegTable, error) {
	var read, write addrSpace
	table := make(RegTable, 0, len(csrs))

	// Explicit addresses first so automatic assignment packs around them.
	for _, c := range csrs {
		if c.Addr == nil {
			continue
		}
		r := regFromCSR(c)
		if c.NBits > 32 {
			return nil, fmt.Errorf("csr %s: n_bits %d exceeds 32", c.Name, c.NBits)
		}
		r.Addr = *c.Addr
		if r.Addr%r.Width() != 0 {
			return nil, fmt.Errorf("csr %s: address %d not aligned to width %d", c.Name, r.Addr, r.Width())
		}
		for _, sp := range spacesFor(c.Mode, rwOverlap, &read, &write) {
			if !sp.free(r.Addr, r.Size()) {
				return nil, fmt.Errorf("csr %s: address %d overlaps a previous register", c.Name, r.Addr)
			}
		}
		for _, sp := range spacesFor(c.Mode, rwOverlap, &read, &write) {
			sp.claim(r.Addr, r.Size())
		}
		table = append(table, r)
	}

	// Automatic assignment in declaration order.
	for _, c := range csrs {
		if c.Addr != nil {
			continue
		}
		if c.NBits > 32 {
			return nil, fmt.Errorf("csr %s: n_bits %d exceeds 32", c.Name, c.NBits)
		}
		r := regFromCSR(c)
		spaces := spacesFor(c.Mode, rwOverlap, &read, &write)
		addr := 0
		for {
			ok := true
			for _, sp := range spaces {
				if !sp.free(addr, r.Size()) {
					ok = false
					break
				}
			}
			if ok {
				break
			}
			addr += r.Width()
		}
		r.Addr = addr
		for _, sp := range spaces {
			sp.claim(addr, r.Size())
		}
		table = append(table, r)
	}

	sort.SliceStable(table, func(i, j int) bool { return table[i].Addr < table[j].Addr })
	return table, nil
}

func regFromCSR(c coredef.CSR) Reg {
	autoreg := true
	if c.Autoreg != nil {
		autoreg = *c.Autoreg
	}
	return Reg{
		Name:       c.Name,
		Mode:       c.Mode,
		NBits:      c.NBits,
		RstVal:     c.RstVal,
		Log2NItems: c.Log2NItems,
		Autoreg:    autoreg,
		Descr:      c.Descr,
	}
}

// AddrWidth returns the number of address bits needed to span the table.
func (t RegTable) AddrWidth() int {
	end := 0
	for _, r := range t {
		if e := r.Addr + r.Size(); e > end {
			end = e
		}
	}
	w := 1
	for (1 << w) < end {
		w++
	}
	return w
}
