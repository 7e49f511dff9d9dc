package handler

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/llm"
)

type TranscribeResponse struct {
	Text string `json:"text" example:"what should I wear to a summer wedding"`
}

// Transcribe godoc
// @Summary      음성 입력 변환
// @Description  업로드한 음성(webm 또는 wav)을 텍스트로 변환합니다.
// @Tags         Chat
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio  formData file   true  "음성 파일"
// @Param        format formData string false "webm 또는 wav (기본값: webm)"
// @Success      200 {object} handler.TranscribeResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      413 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse "음성 인식 미설정"
// @Router       /api/transcribe [post]
func (h *Handler) Transcribe(c *gin.Context) {
	up, ok := h.readUpload(c, "audio")
	if !ok {
		return
	}
	format := strings.ToLower(orDefault(up.Values.Get("format"), llm.FormatWebM))
	if format != llm.FormatWebM && format != llm.FormatWAV {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be webm or wav"})
		return
	}

	ctx, cancel := h.outbound(c.Request.Context())
	defer cancel()
	start := time.Now()
	text, err := h.Transcriber.Transcribe(ctx, up.Data, format)
	if errors.Is(err, llm.ErrSpeechUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice input is not configured"})
		return
	}
	h.recordUpstream("transcribe", start, err)
	if err != nil {
		h.Logger.Warn("transcription failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not transcribe audio"})
		return
	}
	c.JSON(http.StatusOK, TranscribeResponse{Text: text})
}

type upload struct {
	Data   []byte
	Values url.Values
}

// readUpload reads the multipart file under field, capped at MaxUploadBytes, along with the
// plain form values. On failure the response has been written.
func (h *Handler) readUpload(c *gin.Context, field string) (*upload, bool) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	mr, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return nil, false
	}

	up := &upload{Values: url.Values{}}
	found, emptyName := false, false
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			uploadError(c, err)
			return nil, false
		}

		filename, isFile := partFilename(part)
		switch {
		case part.FormName() == field && isFile && !found:
			if filename == "" {
				emptyName = true
				break
			}
			if up.Data, err = io.ReadAll(part); err != nil {
				part.Close()
				uploadError(c, err)
				return nil, false
			}
			found = true
		case !isFile:
			v, err := io.ReadAll(io.LimitReader(part, maxFormValue))
			if err != nil {
				part.Close()
				uploadError(c, err)
				return nil, false
			}
			up.Values.Add(part.FormName(), string(v))
		}
		part.Close()
	}

	if !found {
		msg := "No file part"
		if emptyName {
			msg = "No selected file"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return nil, false
	}
	return up, true
}

const maxFormValue = 1 << 10

// partFilename reports the filename parameter of a part. A part sent with filename=""
// still counts as a file, just an unnamed one.
func partFilename(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}

func uploadError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
}
