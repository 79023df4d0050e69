package checksum

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"hash/crc64"
	"hash/fnv"
	"strings"
	"unicode"

	_ "golang.org/x/crypto/blake2b"
	_ "golang.org/x/crypto/blake2s"
	_ "golang.org/x/crypto/md4"
	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"
)

// Algorithm is a checksum algorithm name as it appears in Tus-Checksum-Algorithm and Upload-Checksum headers
type Algorithm string

//revive:disable
const (
	MD4         Algorithm = "md4"
	MD5         Algorithm = "md5"
	SHA1        Algorithm = "sha1"
	SHA224      Algorithm = "sha224"
	SHA256      Algorithm = "sha256"
	SHA384      Algorithm = "sha384"
	SHA512      Algorithm = "sha512"
	SHA512_224  Algorithm = "sha512224"
	SHA512_256  Algorithm = "sha512256"
	SHA3_224    Algorithm = "sha3224"
	SHA3_256    Algorithm = "sha3256"
	SHA3_384    Algorithm = "sha3384"
	SHA3_512    Algorithm = "sha3512"
	RIPEMD160   Algorithm = "ripemd160"
	BLAKE2S_256 Algorithm = "blake2s256"
	BLAKE2B_256 Algorithm = "blake2b256"
	BLAKE2B_384 Algorithm = "blake2b384"
	BLAKE2B_512 Algorithm = "blake2b512"
	ADLER32     Algorithm = "adler32"
	CRC32       Algorithm = "crc32"
	CRC64       Algorithm = "crc64"
	FNV         Algorithm = "fnv"
	FNV1        Algorithm = "fnv1"
	FNV1A       Algorithm = "fnv1a"
)

//revive:enable

func cryptoHash(h crypto.Hash) func() hash.Hash {
	return h.New
}

// Algorithms maps every supported algorithm to its hash constructor. Upload-Checksum values are computed
// with these hashes.
var Algorithms = map[Algorithm]func() hash.Hash{
	MD4:         cryptoHash(crypto.MD4),
	MD5:         cryptoHash(crypto.MD5),
	SHA1:        cryptoHash(crypto.SHA1),
	SHA224:      cryptoHash(crypto.SHA224),
	SHA256:      cryptoHash(crypto.SHA256),
	SHA384:      cryptoHash(crypto.SHA384),
	SHA512:      cryptoHash(crypto.SHA512),
	SHA512_224:  cryptoHash(crypto.SHA512_224),
	SHA512_256:  cryptoHash(crypto.SHA512_256),
	SHA3_224:    cryptoHash(crypto.SHA3_224),
	SHA3_256:    cryptoHash(crypto.SHA3_256),
	SHA3_384:    cryptoHash(crypto.SHA3_384),
	SHA3_512:    cryptoHash(crypto.SHA3_512),
	RIPEMD160:   cryptoHash(crypto.RIPEMD160),
	BLAKE2S_256: cryptoHash(crypto.BLAKE2s_256),
	BLAKE2B_256: cryptoHash(crypto.BLAKE2b_256),
	BLAKE2B_384: cryptoHash(crypto.BLAKE2b_384),
	BLAKE2B_512: cryptoHash(crypto.BLAKE2b_512),
	ADLER32:     func() hash.Hash { return adler32.New() },
	CRC32:       func() hash.Hash { return crc32.New(crc32.IEEETable) },
	CRC64:       func() hash.Hash { return crc64.New(crc64.MakeTable(crc64.ISO)) },
	FNV:         func() hash.Hash { return fnv.New32() },
	FNV1:        func() hash.Hash { return fnv.New32() },
	FNV1A:       func() hash.Hash { return fnv.New32a() },
}

// GetAlgorithm normalizes a name the way servers spell it ("SHA-1", "sha1", "md_5") and looks it up
func GetAlgorithm(name string) (Algorithm, bool) {
	algo := Algorithm(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name))
	_, ok := Algorithms[algo]
	return algo, ok
}
