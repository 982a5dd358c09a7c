package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUnknownHashFormat is returned by Compare for a stored hash no
	// hasher can parse.
	ErrUnknownHashFormat = errors.New("unknown password hash format")

	// ErrPasswordTooLong is returned by Hash when the scheme cannot take
	// the whole password (bcrypt stops at 72 bytes).
	ErrPasswordTooLong = errors.New("password too long")
)

// Hasher derives salted password hashes and checks passwords against them.
// Compare returns (false, nil) for a plain mismatch and an error only when
// the stored hash itself is unusable.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) (bool, error)
}

// BcryptHasher hashes with bcrypt at a fixed cost. bcrypt draws its own
// random salt and embeds it in the "$2a$" string.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrUnknownHashFormat, err)
	}
}

const argon2Prefix = "$argon2id$"

// Argon2Hasher hashes with argon2id and a random salt, encoded as
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
//
// with unpadded standard base64 for salt and key. Parameters are read back
// from the stored hash on Compare, so they can change without breaking
// existing records.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultArgon2Hasher uses the same argon2id parameters as key derivation
// elsewhere in the project: one pass, 64 MiB, four lanes, 32-byte key.
func DefaultArgon2Hasher() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

// GenerateSalt returns a fresh random salt of SaltLen bytes.
func (h Argon2Hasher) GenerateSalt() []byte {
	return common.GenerateRandByteArray(h.SaltLen)
}

func (h Argon2Hasher) Hash(password string) (string, error) {
	salt := h.GenerateSalt()
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := argon2.IDKey(pw, salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h Argon2Hasher) Compare(password, hash string) (bool, error) {
	p, salt, key, err := decodeArgon2(hash)
	if err != nil {
		return false, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	candidate := argon2.IDKey(pw, salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeArgon2(hash string) (Argon2Hasher, []byte, []byte, error) {
	var p Argon2Hasher

	if !strings.HasPrefix(hash, argon2Prefix) {
		return p, nil, nil, ErrUnknownHashFormat
	}
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return p, nil, nil, ErrUnknownHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrUnknownHashFormat
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrUnknownHashFormat
	}
	if p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, ErrUnknownHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrUnknownHashFormat
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrUnknownHashFormat
	}

	return p, salt, key, nil
}

// MultiHasher hashes new passwords with one scheme and compares against
// any scheme it recognises by the stored hash prefix.
type MultiHasher struct {
	Default Hasher
	Bcrypt  BcryptHasher
	Argon2  Argon2Hasher
}

// NewHasher returns a MultiHasher whose new hashes use scheme
// ("bcrypt" or "argon2id").
func NewHasher(scheme string, bcryptCost int) (*MultiHasher, error) {
	m := &MultiHasher{
		Bcrypt: BcryptHasher{Cost: bcryptCost},
		Argon2: DefaultArgon2Hasher(),
	}
	switch scheme {
	case "bcrypt":
		m.Default = m.Bcrypt
	case "argon2id":
		m.Default = m.Argon2
	default:
		return nil, fmt.Errorf("unknown password hash scheme %q", scheme)
	}
	return m, nil
}

func (m *MultiHasher) Hash(password string) (string, error) {
	return m.Default.Hash(password)
}

func (m *MultiHasher) Compare(password, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, argon2Prefix):
		return m.Argon2.Compare(password, hash)
	case strings.HasPrefix(hash, "$2"):
		return m.Bcrypt.Compare(password, hash)
	default:
		return false, ErrUnknownHashFormat
	}
}
