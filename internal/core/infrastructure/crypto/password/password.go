// Package password 提供节点管理员口令的 argon2id 哈希
//
// 哈希串采用 PHC 格式：$argon2id$v=19$m=<KiB>,t=<迭代>,p=<并行>$<盐>$<哈希>，
// 盐和哈希使用无填充的标准 Base64。
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	cryptointf "github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
)

// argon2id 默认参数
const (
	DefaultMemory      uint32 = 19 * 1024
	DefaultIterations  uint32 = 2
	DefaultParallelism uint8  = 1
	DefaultSaltLength         = 16
	DefaultKeyLength   uint32 = 32
)

var (
	// ErrInvalidHash 哈希串格式错误
	ErrInvalidHash = errors.New("口令哈希格式无效")
	// ErrIncompatibleVersion argon2 版本不匹配
	ErrIncompatibleVersion = errors.New("argon2 版本不兼容")
)

var b64 = base64.RawStdEncoding

// Hasher argon2id 口令哈希器
type Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  int
	keyLength   uint32
}

var _ cryptointf.PasswordHasher = (*Hasher)(nil)

// NewHasher 使用默认参数创建哈希器
func NewHasher() *Hasher {
	return &Hasher{
		memory:      DefaultMemory,
		iterations:  DefaultIterations,
		parallelism: DefaultParallelism,
		saltLength:  DefaultSaltLength,
		keyLength:   DefaultKeyLength,
	}
}

// Hash 生成带随机盐的哈希串
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("生成盐失败: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify 校验口令，参数取自哈希串本身
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	other := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func decode(encoded string) (*Hasher, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	p := &Hasher{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if p.iterations == 0 || p.parallelism == 0 {
		return nil, nil, nil, ErrInvalidHash
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, nil, ErrInvalidHash
	}
	return p, salt, key, nil
}
