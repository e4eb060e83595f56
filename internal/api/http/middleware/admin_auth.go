package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apitypes "github.com/billy1624/champ/internal/api/http/types"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
)

// AdminAuth 管理口令认证
//
// 请求需携带 Authorization: Bearer <口令>，口令与配置中的 argon2id 哈希比对。
// 未配置哈希时所有请求返回 403。
func AdminAuth(hasher crypto.PasswordHasher, passwordHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passwordHash == "" || hasher == nil {
			abortWithError(c, http.StatusForbidden, apitypes.ErrSubmitDisabled, "未配置管理口令，追加接口已禁用")
			return
		}

		password, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			abortWithError(c, http.StatusUnauthorized, apitypes.ErrUnauthenticated, "缺少管理口令")
			return
		}

		matched, err := hasher.Verify(password, passwordHash)
		if err != nil {
			_ = c.Error(err)
			abortWithError(c, http.StatusInternalServerError, apitypes.ErrInternal, "管理口令哈希配置无效")
			return
		}
		if !matched {
			c.Header("WWW-Authenticate", "Bearer")
			abortWithError(c, http.StatusUnauthorized, apitypes.ErrUnauthenticated, "管理口令错误")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apitypes.NewErrorResponse(code, message, nil).WithRequestID(GetRequestID(c)))
}
