package sphinx

import "fmt"

// Serialize encodes the packet per the wire format: an optional version
// byte, the ephemeral point, routing_info, the header HMAC, and, in the
// message variant, the encrypted message. No length prefixes; every
// field's width is fixed by pkt.Params.
func (pkt *Packet) Serialize() []byte {
	buf := make([]byte, 0, pkt.Params.wireLen())
	if pkt.Params.VersionByte != nil {
		buf = append(buf, *pkt.Params.VersionByte)
	}
	buf = append(buf, pkt.Ephemeral.Bytes()...)
	buf = append(buf, pkt.RoutingInfo.Bytes()...)
	buf = append(buf, pkt.Hmac...)
	if pkt.Message != nil {
		buf = append(buf, pkt.Message...)
	}
	return buf
}

// Deserialize parses b into a Packet under params, checking the version
// byte (if the profile carries one) and the total length before
// touching any field.
func Deserialize(params Params, b []byte) (*Packet, error) {
	want := params.wireLen()
	if len(b) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPacketLength, len(b), want)
	}

	off := 0
	if params.VersionByte != nil {
		if b[0] != *params.VersionByte {
			return nil, ErrInvalidVersion
		}
		off++
	}

	pointSize := params.Group.PointSize()
	ephemeral, err := params.Group.ParsePoint(b[off : off+pointSize])
	if err != nil {
		return nil, fmt.Errorf("sphinx: parsing ephemeral point: %w", err)
	}
	off += pointSize

	pathSize := params.PathSize()
	path := pathFromBytes(b[off:off+pathSize], params.N, params.L, params.M)
	off += pathSize

	hmacField := append([]byte(nil), b[off:off+params.M]...)
	off += params.M

	var message []byte
	if params.MessageLen > 0 {
		message = append([]byte(nil), b[off:off+params.MessageLen]...)
		off += params.MessageLen
	}

	return &Packet{
		Params:      params,
		Ephemeral:   ephemeral,
		RoutingInfo: path,
		Hmac:        hmacField,
		Message:     message,
	}, nil
}
