package account

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/opd-ai/keybind/interfaces"
	"golang.org/x/crypto/sha3"
)

// AddressLength is the byte length of an account address.
const AddressLength = 20

// Keccak256 returns the legacy Keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// PubkeyToAddress derives the address of a public key: the last 20 bytes of
// the Keccak-256 hash of the uncompressed point without its 0x04 prefix.
func PubkeyToAddress(pub *btcec.PublicKey) [AddressLength]byte {
	var addr [AddressLength]byte
	digest := Keccak256(pub.SerializeUncompressed()[1:])
	copy(addr[:], digest[len(digest)-AddressLength:])
	return addr
}

// ChecksumAddress renders an address with EIP-55 mixed-case checksum.
func ChecksumAddress(addr [AddressLength]byte) interfaces.Identity {
	lower := hex.EncodeToString(addr[:])
	digest := Keccak256([]byte(lower))

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 32
		}
	}
	return interfaces.Identity("0x" + string(out))
}

// IsHexAddress reports whether s is a 0x-prefixed 40 digit hex address.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	s = s[2:]
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ParseAddress decodes a hex address. The checksum is not enforced.
func ParseAddress(id interfaces.Identity) ([AddressLength]byte, bool) {
	var addr [AddressLength]byte
	if !IsHexAddress(string(id)) {
		return addr, false
	}
	raw, _ := hex.DecodeString(string(id)[2:])
	copy(addr[:], raw)
	return addr, true
}
