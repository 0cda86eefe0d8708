package middleware

import (
	"fmt"
	"log"
	"runtime/debug"

	"ecom-insight/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery 自定义恢复中间件
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// 记录panic详细信息
		err := fmt.Sprintf("panic recovered: %v", recovered)
		stack := string(debug.Stack())

		log.Printf("[PANIC RECOVERY] %s\n%s", err, stack)

		// 根据环境返回不同的错误信息
		if gin.Mode() == gin.DebugMode {
			// 开发环境返回详细错误信息
			response.ErrorWithData(c, response.INTERNAL_ERROR, gin.H{
				"panic": recovered,
				"stack": stack,
			}, "服务器内部错误")
		} else {
			// 生产环境只返回通用错误信息
			response.Error(c, response.INTERNAL_ERROR, "服务器内部错误")
		}
	})
}
