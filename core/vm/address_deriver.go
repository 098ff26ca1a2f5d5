package vm

// DefaultAddressDeriver implements AddressDeriver using a minimal, bounded
// RLP encoding of exactly the two-element (sender, nonce) list CREATE needs
// — not the general RLP codec (§1 Out-of-scope covers that), but the one
// fixed shape the Yellow Paper's address-derivation rule requires.

import "github.com/eth2030/eei/core/types"

// DefaultAddressDeriver is the production AddressDeriver.
type DefaultAddressDeriver struct{}

// DeriveCreateAddress returns keccak256(rlp([sender, nonce]))[12:].
func (DefaultAddressDeriver) DeriveCreateAddress(caller types.Address, nonce uint64) types.Address {
	encoded := rlpEncodeSenderNonce(caller, nonce)
	hash := Keccak256(encoded)
	return types.BytesToAddress(hash.Bytes()[12:])
}

// DeriveCreate2Address returns
// keccak256(0xff ++ sender ++ salt ++ initCodeHash)[12:] (EIP-1014).
func (DefaultAddressDeriver) DeriveCreate2Address(caller types.Address, salt BigInt256, initCodeHash types.Hash) types.Address {
	saltBytes := salt.Bytes32()
	buf := make([]byte, 0, 1+types.AddressLength+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, caller.Bytes()...)
	buf = append(buf, saltBytes[:]...)
	buf = append(buf, initCodeHash.Bytes()...)
	hash := Keccak256(buf)
	return types.BytesToAddress(hash.Bytes()[12:])
}

// rlpEncodeSenderNonce encodes the two-element list [sender, nonce] using
// RLP's rules, specialized to these two fixed shapes (a 20-byte string and a
// big-endian minimal-length integer) rather than a general encoder.
func rlpEncodeSenderNonce(sender types.Address, nonce uint64) []byte {
	addrItem := rlpEncodeBytes(sender.Bytes())
	nonceItem := rlpEncodeBytes(minimalBigEndian(nonce))
	payload := append(append([]byte{}, addrItem...), nonceItem...)
	return append(rlpListPrefix(len(payload)), payload...)
}

func minimalBigEndian(x uint64) []byte {
	if x == 0 {
		return nil
	}
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(x)
		x >>= 8
	}
	i := 0
	for i < 8 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(rlpStringPrefix(len(b)), b...)
}

func rlpStringPrefix(length int) []byte {
	if length < 56 {
		return []byte{byte(0x80 + length)}
	}
	lenBytes := minimalBigEndian(uint64(length))
	return append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
}

func rlpListPrefix(length int) []byte {
	if length < 56 {
		return []byte{byte(0xc0 + length)}
	}
	lenBytes := minimalBigEndian(uint64(length))
	return append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
}
