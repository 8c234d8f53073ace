package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PathID разбирает положительный целочисленный параметр пути.
// При ошибке сам отвечает 400 и возвращает false.
func PathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "invalid_id", name+" must be a positive integer", gin.H{name: raw})
		return 0, false
	}
	return id, true
}
