/**
* Name: 			mirror.go
* Description: 		스마트 미러 이미지 분석 핸들러
* Workflow: 		이미지 업로드 → 형식 확인 → 비전 모델 분석 → 결과 + 화면용 뷰 반환
 */
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"StyleSense/internal/models"
	"StyleSense/internal/stylist"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type MirrorResponse struct {
	Analysis models.VisionAnalysis `json:"analysis"`
	View     stylist.MirrorView    `json:"view"`
	Degraded bool                  `json:"degraded"`
}

// AnalyzeMirror godoc
// @Summary      스마트 미러 분석
// @Description  업로드한 사진(jpg, png)을 비전 모델로 분석하여 피부톤, 체형, 코디 아이디어, 스타일 점수를 반환합니다.
// @Tags         Mirror
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "사진 파일"
// @Success      200 {object} handler.MirrorResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      413 {object} handler.ErrorResponse
// @Failure      415 {object} handler.ErrorResponse "지원하지 않는 형식"
// @Router       /api/mirror/analyze [post]
func (h *Handler) AnalyzeMirror(c *gin.Context) {
	analysis, ok := h.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, MirrorResponse{
		Analysis: analysis,
		View:     stylist.NewMirrorView(analysis),
		Degraded: analysis.Failed(),
	})
}

// AnalyzeVision godoc
// @Summary      비전 분석 (독립 서비스)
// @Description  인증 없이 이미지를 분석하여 비전 JSON을 그대로 반환합니다. 저장하지 않습니다.
// @Tags         Vision
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "사진 파일"
// @Success      200 {object} models.VisionAnalysis
// @Failure      400 {object} handler.ErrorResponse "No file part / No selected file"
// @Router       /analyze [post]
func (h *Handler) AnalyzeVision(c *gin.Context) {
	analysis, ok := h.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) analyzeUpload(c *gin.Context) (models.VisionAnalysis, bool) {
	up, ok := h.readUpload(c, "file")
	if !ok {
		return models.VisionAnalysis{}, false
	}
	mime := http.DetectContentType(up.Data)
	if !allowedImageTypes[mime] {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only jpg and png images are supported"})
		return models.VisionAnalysis{}, false
	}
	return h.Stylist.AnalyzeImage(c.Request.Context(), up.Data, mime), true
}
