/**
* Name: 			stt.go
* Description: 		음성 입력을 텍스트로 변환
* Workflow: 		Speech 클라이언트 생성, 오디오 전송, 최종 결과 수신
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

var ErrSpeechUnavailable = errors.New("speech recognition not configured")

// Transcriber turns a short recorded clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, format string) (string, error)
}

// Audio formats accepted by Transcribe.
const (
	FormatWebM = "webm"
	FormatWAV  = "wav"
)

type SpeechTranscriber struct {
	credentialsFile string
	language        string
}

func NewSpeechTranscriber(credentialsFile, language string) *SpeechTranscriber {
	return &SpeechTranscriber{credentialsFile: credentialsFile, language: language}
}

func (s *SpeechTranscriber) Transcribe(ctx context.Context, audio []byte, format string) (string, error) {
	if s.credentialsFile == "" {
		return "", ErrSpeechUnavailable
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(s.credentialsFile))
	if err != nil {
		return "", fmt.Errorf("failed to create speech client: %w", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig(format, s.language),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

func recognitionConfig(format, language string) *speechpb.RecognitionConfig {
	if format == FormatWAV {
		return &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			AudioChannelCount: 1,
			LanguageCode:      language,
		}
	}
	return &speechpb.RecognitionConfig{
		Encoding:        speechpb.RecognitionConfig_WEBM_OPUS,
		SampleRateHertz: 48000,
		LanguageCode:    language,
	}
}
