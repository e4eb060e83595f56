package crypto

// PasswordHasher 口令哈希服务（argon2id）
type PasswordHasher interface {
	// Hash 生成带盐的 PHC 格式哈希串
	Hash(password string) (string, error)

	// Verify 校验口令与哈希串是否匹配
	Verify(password, encoded string) (bool, error)
}
