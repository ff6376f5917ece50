package sphinx

import (
	"crypto/subtle"
	"fmt"
)

// HopInput pairs a hop's public point with the payload destined for it,
// in route order from the sender's first hop to its last.
type HopInput struct {
	Point   Point
	Payload []byte
}

// Packet is a fully-formed Sphinx onion: the ephemeral public point, the
// fixed-length routing_info, the header HMAC, and, in the end-to-end
// variant, an encrypted message.
type Packet struct {
	Params      Params
	Ephemeral   Point
	RoutingInfo *Path
	Hmac        []byte
	Message     []byte
}

// ProcessedPacket is the result of peeling one layer off a Packet.
// Next is nil exactly when the Process call returned ErrExitHop.
type ProcessedPacket struct {
	Payload []byte
	Message []byte
	Next    *Packet
}

// Construct builds a packet addressed through route[0].Point, ...,
// route[len(route)-1].Point, the last of which is the exit. message, if
// non-nil, must be exactly params.MessageLen bytes and is encrypted
// layer by layer as the end-to-end channel. initialHmac defaults to
// params.M zero bytes, the exit terminator, when nil.
func Construct(params Params, sessionScalar Scalar, route []HopInput, associatedData []byte, message []byte, initialHmac []byte) (*Packet, error) {
	points := make([]Point, len(route))
	for i, h := range route {
		points[i] = h.Point
	}

	secrets, ephemeral, err := DeriveSharedSecrets(params, sessionScalar, points)
	if err != nil {
		return nil, err
	}

	return assemble(params, secrets, ephemeral, route, associatedData, message, initialHmac)
}

// Assemble writes payloads into a header using shared secrets already
// derived by DeriveSharedSecrets: the split form of Construct for a
// sender that wants to rebuild a packet along the same route with
// different payloads without repeating the Diffie-Hellman exchange.
func Assemble(params Params, secrets [][]byte, ephemeral Point, payloads [][]byte, associatedData []byte, message []byte, initialHmac []byte) (*Packet, error) {
	route := make([]HopInput, len(payloads))
	for i, p := range payloads {
		route[i] = HopInput{Payload: p}
	}
	return assemble(params, secrets, ephemeral, route, associatedData, message, initialHmac)
}

func assemble(params Params, secrets [][]byte, ephemeral Point, route []HopInput, associatedData []byte, message []byte, initialHmac []byte) (*Packet, error) {
	k := len(route)
	if k < 1 || k > params.N {
		return nil, fmt.Errorf("%w: %d hops, must be in [1,%d]", ErrRouteLength, k, params.N)
	}
	if len(secrets) != k {
		return nil, fmt.Errorf("sphinx: %d shared secrets for %d hops", len(secrets), k)
	}
	for i, h := range route {
		if len(h.Payload) != params.L {
			return nil, fmt.Errorf("%w: hop %d has %d bytes, want %d", ErrPayloadLength, i, len(h.Payload), params.L)
		}
	}
	if message != nil && len(message) != params.MessageLen {
		return nil, fmt.Errorf("sphinx: message is %d bytes, want %d", len(message), params.MessageLen)
	}

	path := newPath(params.N, params.L, params.M)

	// Filler: pre-generate, at the sender, the junk each hop will
	// re-derive on its own rho stream after peeling. Hop k (the exit)
	// needs none, since it never forwards and never reads past its own
	// slot. Each prior hop i (0-indexed) contributes (i+1) slots' worth
	// of its own rho stream, read from slot offset N-i so that it ends
	// with slot N, the extra slot the hop appends when it peels; the
	// contributions overlap in a growing prefix, XORed together into one
	// filler buffer the width of the exit hop's eventual tail.
	filler := make([]byte, (k-1)*params.SlotSize())
	for i := 0; i < k-1; i++ {
		ks, err := params.rhoStream(secrets[i])
		if err != nil {
			return nil, err
		}
		if err := ks.Seek(uint64(params.SlotSize()) * uint64(params.N-i)); err != nil {
			return nil, err
		}
		contribLen := (i + 1) * params.SlotSize()
		contrib := make([]byte, contribLen)
		ks.XORKeyStream(contrib, contrib)
		for j := 0; j < contribLen; j++ {
			filler[j] ^= contrib[j]
		}
	}

	hmacCur := initialHmac
	if hmacCur == nil {
		hmacCur = make([]byte, params.M)
	}

	var msg []byte
	if message != nil {
		msg = append([]byte(nil), message...)
	}

	for i := k - 1; i >= 0; i-- {
		slot := Slot{Data: make([]byte, params.L), Hmac: make([]byte, params.M)}
		copy(slot.Data, route[i].Payload)
		copy(slot.Hmac, hmacCur)
		path.Push(slot)

		rho, err := params.rhoStream(secrets[i])
		if err != nil {
			return nil, err
		}
		path.XOR(rho)

		if i == k-1 {
			path.SetTail(filler)
		}

		if msg != nil {
			um, err := params.umStream(secrets[i])
			if err != nil {
				return nil, err
			}
			um.XORKeyStream(msg, msg)
		}

		hmacCur = params.mac(params.muKey(secrets[i]), path.Bytes(), associatedData)
	}

	return &Packet{
		Params:      params,
		Ephemeral:   ephemeral,
		RoutingInfo: path,
		Hmac:        hmacCur,
		Message:     msg,
	}, nil
}

// Process peels one layer off pkt using the hop's own secret scalar. It
// recomputes the shared secret via DH, verifies the header HMAC in
// constant time, decrypts routing_info (and the message, if present),
// and pops the front slot. If the popped slot's HMAC is all-zero this
// hop is the exit: Process returns the payload and ErrExitHop. Otherwise
// it returns the payload and the packet to forward to the next hop.
func Process(params Params, secretScalar Scalar, pkt *Packet, associatedData []byte) (*ProcessedPacket, error) {
	dh, err := params.Group.DH(secretScalar, pkt.Ephemeral)
	if err != nil {
		return nil, &GroupError{Op: "dh", Err: err}
	}
	secret := params.tau(dh)

	expected := params.mac(params.muKey(secret), pkt.RoutingInfo.Bytes(), associatedData)
	macOK := subtle.ConstantTimeCompare(expected, pkt.Hmac) == 1
	if !macOK {
		return nil, ErrMACMismatch
	}

	path := pkt.RoutingInfo.Clone()
	rho, err := params.rhoStream(secret)
	if err != nil {
		return nil, err
	}
	front := path.Peel(rho)

	var msg []byte
	if pkt.Message != nil {
		msg = append([]byte(nil), pkt.Message...)
		um, err := params.umStream(secret)
		if err != nil {
			return nil, err
		}
		um.XORKeyStream(msg, msg)
	}

	if isZero(front.Hmac) {
		return &ProcessedPacket{Payload: front.Data, Message: msg}, ErrExitHop
	}

	blind, err := params.blinding(pkt.Ephemeral, secret)
	if err != nil {
		return nil, &GroupError{Op: "blinding", Err: err}
	}
	nextEphemeral, err := params.Group.DH(blind, pkt.Ephemeral)
	if err != nil {
		return nil, &GroupError{Op: "blind-point", Err: err}
	}

	next := &Packet{
		Params:      params,
		Ephemeral:   nextEphemeral,
		RoutingInfo: path,
		Hmac:        front.Hmac,
		Message:     msg,
	}
	return &ProcessedPacket{Payload: front.Data, Message: msg, Next: next}, nil
}

// isZero reports whether b is all-zero bytes, without branching early.
// The exit/forward decision is made on this result, so it must not leak
// which byte (if any) differed.
func isZero(b []byte) bool {
	var v byte
	for _, c := range b {
		v |= c
	}
	return v == 0
}
