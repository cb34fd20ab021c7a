package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam parses the named path parameter as a positive integer ID
func UintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}

	return uint(v), true
}
