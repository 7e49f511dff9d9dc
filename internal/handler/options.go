package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"StyleSense/internal/catalog"
)

// Options godoc
// @Summary      선택 옵션 목록
// @Description  회원가입, 스튜디오, 옷장, 가이드 화면에서 사용하는 선택 목록을 반환합니다.
// @Tags         System
// @Produce      json
// @Success      200 {object} catalog.Catalog
// @Router       /api/options [get]
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Default())
}
