package sphinx

// Slot is one fixed-width routing_info entry: a per-hop payload and the
// HMAC chained in by the layer that was built after it.
type Slot struct {
	Data []byte // width L
	Hmac []byte // width M
}

func newSlot(l, m int) Slot {
	return Slot{Data: make([]byte, l), Hmac: make([]byte, m)}
}

func (s Slot) clone() Slot {
	c := Slot{Data: make([]byte, len(s.Data)), Hmac: make([]byte, len(s.Hmac))}
	copy(c.Data, s.Data)
	copy(c.Hmac, s.Hmac)
	return c
}

// Path is the fixed-length ordered sequence of N routing_info slots.
// Position 0 is always the slot the next hop consumes.
type Path struct {
	slots []Slot
	l, m  int
}

func newPath(n, l, m int) *Path {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = newSlot(l, m)
	}
	return &Path{slots: slots, l: l, m: m}
}

func pathFromBytes(b []byte, n, l, m int) *Path {
	path := newPath(n, l, m)
	slotSize := l + m
	for i := 0; i < n; i++ {
		off := i * slotSize
		copy(path.slots[i].Data, b[off:off+l])
		copy(path.slots[i].Hmac, b[off+l:off+slotSize])
	}
	return path
}

// Len returns N, the fixed slot count.
func (p *Path) Len() int { return len(p.slots) }

// Slots exposes the underlying slots for read-only inspection.
func (p *Path) Slots() []Slot { return p.slots }

// Push shifts the sequence right by one, dropping the last slot and
// writing item at position 0.
func (p *Path) Push(item Slot) {
	for i := len(p.slots) - 1; i > 0; i-- {
		p.slots[i] = p.slots[i-1]
	}
	p.slots[0] = item
}

// Pop reads position 0, shifts the remainder left by one, and zero-fills
// the vacated tail slot.
func (p *Path) Pop() Slot {
	item := p.slots[0]
	for i := 1; i < len(p.slots); i++ {
		p.slots[i-1] = p.slots[i]
	}
	p.slots[len(p.slots)-1] = newSlot(p.l, p.m)
	return item
}

// Peel is the processing-side counterpart of Push/XOR: it XORs the
// stream over the existing N slots, then XORs the stream's next (L+M)
// bytes into a fresh zero tail slot, equivalent to logically extending
// the path by one zero slot, XOR-ing all N+1, and popping the front.
// It returns the popped front slot.
func (p *Path) Peel(ks KeyStream) Slot {
	p.XOR(ks)

	tail := newSlot(p.l, p.m)
	ks.XORKeyStream(tail.Data, tail.Data)
	ks.XORKeyStream(tail.Hmac, tail.Hmac)

	front := p.slots[0]
	for i := 1; i < len(p.slots); i++ {
		p.slots[i-1] = p.slots[i]
	}
	p.slots[len(p.slots)-1] = tail
	return front
}

// XOR applies ks over every slot's data then hmac field in order,
// consuming exactly N*(L+M) bytes of stream.
func (p *Path) XOR(ks KeyStream) {
	p.XORRange(ks, 0, len(p.slots))
}

// XORRange applies ks to the slot range [start, end), consuming exactly
// (end-start)*(L+M) bytes of stream.
func (p *Path) XORRange(ks KeyStream, start, end int) {
	for i := start; i < end; i++ {
		ks.XORKeyStream(p.slots[i].Data, p.slots[i].Data)
		ks.XORKeyStream(p.slots[i].Hmac, p.slots[i].Hmac)
	}
}

// SetTail overwrites the last len(b)/(L+M) slots with b, replacing
// whatever was there rather than XOR-ing it in. Used once, by the exit
// hop during construction, to stamp in the pre-computed filler.
func (p *Path) SetTail(b []byte) {
	slotSize := p.l + p.m
	n := len(b) / slotSize
	start := len(p.slots) - n
	for i := 0; i < n; i++ {
		off := i * slotSize
		copy(p.slots[start+i].Data, b[off:off+p.l])
		copy(p.slots[start+i].Hmac, b[off+p.l:off+slotSize])
	}
}

// Bytes concatenates every slot's data then hmac field, in order: the
// exact wire layout of routing_info.
func (p *Path) Bytes() []byte {
	buf := make([]byte, 0, len(p.slots)*(p.l+p.m))
	for _, s := range p.slots {
		buf = append(buf, s.Data...)
		buf = append(buf, s.Hmac...)
	}
	return buf
}

// Clone returns a deep copy, so a hop can peel a layer without mutating
// the packet it received.
func (p *Path) Clone() *Path {
	clone := &Path{slots: make([]Slot, len(p.slots)), l: p.l, m: p.m}
	for i, s := range p.slots {
		clone.slots[i] = s.clone()
	}
	return clone
}
