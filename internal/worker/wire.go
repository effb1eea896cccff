package worker

import "encoding/binary"

// encodeTime returns the 4-byte big-endian encoding of simulated time t,
// the wire payload every protocol op writes to the worker's stdin.
func encodeTime(t uint32) [4]byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], t)
	return buf
}

// lsb returns BE(t)[3], the byte every start/continue echo must match.
func lsb(t uint32) byte {
	b := encodeTime(t)
	return b[3]
}
