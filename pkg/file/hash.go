package file

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"hash/fnv"
	"io"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"       //nolint:staticcheck // legacy digest, still requested by clients
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // legacy digest, still requested by clients
	"golang.org/x/crypto/sha3"
)

// DefaultHash is the algorithm used by Hash when none is given.
const DefaultHash = "md5"

var hashFactories = map[string]func() hash.Hash{
	"md5":        md5.New,
	"md4":        md4.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512/224": sha512.New512_224,
	"sha512/256": sha512.New512_256,
	"sha3-224":   func() hash.Hash { return sha3.New224() },
	"sha3-256":   func() hash.Hash { return sha3.New256() },
	"sha3-384":   func() hash.Hash { return sha3.New384() },
	"sha3-512":   func() hash.Hash { return sha3.New512() },
	"ripemd160":  ripemd160.New,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	"blake2b-384": func() hash.Hash {
		h, _ := blake2b.New384(nil)
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
	"blake2s-256": func() hash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	},
	// crc32b is the IEEE polynomial, as in zlib.
	"crc32b":  func() hash.Hash { return crc32.NewIEEE() },
	"adler32": func() hash.Hash { return adler32.New() },
	"fnv132":  func() hash.Hash { return fnv.New32() },
	"fnv1a32": func() hash.Hash { return fnv.New32a() },
	"fnv164":  func() hash.Hash { return fnv.New64() },
	"fnv1a64": func() hash.Hash { return fnv.New64a() },
}

// NewHash returns a fresh hash.Hash for the named algorithm.
// Names are case-insensitive; an empty name selects DefaultHash.
func NewHash(algorithm string) (hash.Hash, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = DefaultHash
	}
	factory, ok := hashFactories[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, algorithm)
	}
	return factory(), nil
}

// HashAlgorithms lists the supported algorithm names in sorted order.
func HashAlgorithms() []string {
	names := make([]string, 0, len(hashFactories))
	for name := range hashFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hash computes the hex-encoded digest of the file at path.
// Streams file content so large artifacts are never loaded into memory.
//
// Example:
//
//	sum, err := file.Hash(afero.NewOsFs(), "/tmp/upload-1", "sha256")
func Hash(fs afero.Fs, path, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}

	f, err := open(fs, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// MD5 is shorthand for Hash(fs, path, "md5").
func MD5(fs afero.Fs, path string) (string, error) {
	return Hash(fs, path, "md5")
}
