package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/service"
)

// parseIDParam 取路径上的数字 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s 必须是正整数", name)
	}
	return id, nil
}

// checkStoreAccess 当前登录人对门店的归属校验
func checkStoreAccess(c *gin.Context, access *service.AccessService, storeID int64) error {
	return access.CheckStore(
		c.Request.Context(),
		middleware.GetUserID(c),
		middleware.GetUserRole(c),
		storeID,
	)
}
