package sphinx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathPushPop(t *testing.T) {
	p := newPath(4, 2, 1)

	p.Push(Slot{Data: []byte{1, 1}, Hmac: []byte{0xA}})
	p.Push(Slot{Data: []byte{2, 2}, Hmac: []byte{0xB}})

	assert.Equal(t, []byte{2, 2}, p.Slots()[0].Data)
	assert.Equal(t, []byte{1, 1}, p.Slots()[1].Data)
	assert.True(t, bytes.Equal(p.Slots()[2].Data, []byte{0, 0}))

	front := p.Pop()
	assert.Equal(t, []byte{2, 2}, front.Data)
	assert.Equal(t, []byte{1, 1}, p.Slots()[0].Data)
	assert.True(t, bytes.Equal(p.Slots()[3].Data, []byte{0, 0}))
}

func TestPathBytesRoundTrip(t *testing.T) {
	p := newPath(3, 2, 2)
	p.Push(Slot{Data: []byte{1, 2}, Hmac: []byte{9, 9}})
	p.Push(Slot{Data: []byte{3, 4}, Hmac: []byte{8, 8}})

	raw := p.Bytes()
	require.Len(t, raw, 3*(2+2))

	reconstructed := pathFromBytes(raw, 3, 2, 2)
	assert.Equal(t, p.Bytes(), reconstructed.Bytes())
}

func TestPathClone(t *testing.T) {
	p := newPath(2, 2, 2)
	p.Push(Slot{Data: []byte{1, 2}, Hmac: []byte{3, 4}})

	clone := p.Clone()
	clone.Slots()[0].Data[0] = 0xFF

	assert.NotEqual(t, clone.Slots()[0].Data[0], p.Slots()[0].Data[0])
}

// xorOnlyStream is a deterministic, non-cryptographic KeyStream used to
// keep these path-level tests independent of any Stream implementation.
type xorOnlyStream struct{ ctr byte }

func (s *xorOnlyStream) XORKeyStream(dst, src []byte) {
	for i := range src {
		dst[i] = src[i] ^ s.ctr
		s.ctr++
	}
}

func (s *xorOnlyStream) Seek(offset uint64) error {
	s.ctr = byte(offset)
	return nil
}

func TestPathXORRangeOnlyTouchesRange(t *testing.T) {
	p := newPath(4, 2, 2)
	before := p.Bytes()

	p.XORRange(&xorOnlyStream{}, 1, 2)
	after := p.Bytes()

	slotSize := 4
	assert.Equal(t, before[:slotSize], after[:slotSize])
	assert.NotEqual(t, before[slotSize:2*slotSize], after[slotSize:2*slotSize])
	assert.Equal(t, before[2*slotSize:], after[2*slotSize:])
}

func TestPathPeelMatchesExtendXORPop(t *testing.T) {
	n, l, m := 3, 2, 2
	p := newPath(n, l, m)
	p.Push(Slot{Data: []byte{1, 2}, Hmac: []byte{3, 4}})
	p.Push(Slot{Data: []byte{5, 6}, Hmac: []byte{7, 8}})

	// Reference: logically extend by one zero slot, XOR all N+1, pop front.
	extended := pathFromBytes(append(append([]byte(nil), p.Bytes()...), make([]byte, l+m)...), n+1, l, m)
	extended.XOR(&xorOnlyStream{})
	wantFront := extended.Pop()
	wantRest := extended.Bytes()[:n*(l+m)]

	gotFront := p.Peel(&xorOnlyStream{})

	assert.Equal(t, wantFront.Data, gotFront.Data)
	assert.Equal(t, wantFront.Hmac, gotFront.Hmac)
	assert.Equal(t, wantRest, p.Bytes())
}
