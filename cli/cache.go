package cli

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// DefaultCacheFile is where gen keeps its manifest between runs.
const DefaultCacheFile = ".splice.cache"

const (
	cacheMagic   = "SPLC"
	cacheVersion = uint16(1)
)

// Manifest records, per template, the digests of the last successful
// generation. gen consults it to skip templates whose input and
// output are both unchanged.
type Manifest struct {
	Entries map[string]Entry
}

// Entry is one template's generation record.
type Entry struct {
	Input  [32]byte // digest of the template bytes
	Output [32]byte // digest of the generated bytes
	Target string   // path the output was written to
}

// Digest hashes file content for manifest comparison.
func Digest(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Entries: make(map[string]Entry)}
}

// UpToDate reports whether input, whose current content is data,
// still matches its recorded generation and the recorded output file
// is on disk unmodified.
func (m *Manifest) UpToDate(input string, data []byte) bool {
	entry, ok := m.Entries[input]
	if !ok || entry.Input != Digest(data) {
		return false
	}
	out, err := os.ReadFile(entry.Target)
	return err == nil && Digest(out) == entry.Output
}

// Record stores the generation result for input.
func (m *Manifest) Record(input string, data, output []byte, target string) {
	m.Entries[input] = Entry{Input: Digest(data), Output: Digest(output), Target: target}
}

// Encode writes the manifest in its binary form: a preamble carrying
// magic and version, a canonical CBOR payload, and the payload's
// digest. Canonical encoding keeps the file byte-stable for identical
// content, so repeated runs do not churn it.
func (m *Manifest) Encode() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	payload, err := encMode.Marshal(m.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(cacheMagic)
	var version [2]byte
	binary.LittleEndian.PutUint16(version[:], cacheVersion)
	buf.Write(version[:])
	buf.Write(payload)
	digest := blake2b.Sum256(payload)
	buf.Write(digest[:])
	return buf.Bytes(), nil
}

// DecodeManifest parses a binary manifest, verifying magic, version
// and payload digest.
func DecodeManifest(data []byte) (*Manifest, error) {
	const preambleLen = 6
	if len(data) < preambleLen+32 {
		return nil, fmt.Errorf("manifest too short: %d bytes", len(data))
	}
	if string(data[0:4]) != cacheMagic {
		return nil, fmt.Errorf("invalid magic: got %q, expected %q", data[0:4], cacheMagic)
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != cacheVersion {
		return nil, fmt.Errorf("unsupported manifest version: 0x%04x", v)
	}

	payload := data[preambleLen : len(data)-32]
	var digest [32]byte
	copy(digest[:], data[len(data)-32:])
	if blake2b.Sum256(payload) != digest {
		return nil, fmt.Errorf("manifest digest mismatch")
	}

	entries := make(map[string]Entry)
	if err := cbor.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &Manifest{Entries: entries}, nil
}

// LoadManifest reads path. An absent, corrupt or stale-format
// manifest comes back empty: the cache only ever causes extra
// regeneration, never a failure.
func LoadManifest(path string) *Manifest {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewManifest()
	}
	m, err := DecodeManifest(data)
	if err != nil {
		return NewManifest()
	}
	return m
}

// Save writes the manifest to path via a temporary file so a crashed
// run cannot leave a truncated manifest behind.
func (m *Manifest) Save(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}
