package service

import (
	"context"
	"errors"

	"brewlog/internal/ai"
)

// ErrVisionUnavailable is returned when no AI key is configured.
var ErrVisionUnavailable = errors.New("bag scanning is not configured")

const maxImageBytes = 8 << 20 // 8 MB

var errImageTooLarge = errors.New("image exceeds the 8 MB limit")

// bagAnalyzer is what VisionService needs from the AI client.
type bagAnalyzer interface {
	AnalyzeBagPhoto(ctx context.Context, image []byte, mimeType string) (ai.BagInfo, error)
}

// VisionService forwards bag photos to the vision model.
type VisionService struct {
	analyzer bagAnalyzer
}

// NewVisionService accepts a nil client; the service then reports
// itself unavailable per request instead of failing startup.
func NewVisionService(client *ai.Client) *VisionService {
	if client == nil {
		return &VisionService{}
	}
	return &VisionService{analyzer: client}
}

func (s *VisionService) AnalyzeBag(ctx context.Context, image []byte, mimeType string) (ai.BagInfo, error) {
	if s.analyzer == nil {
		return ai.BagInfo{}, ErrVisionUnavailable
	}
	if len(image) == 0 {
		return ai.BagInfo{}, errors.New("image is required")
	}
	if len(image) > maxImageBytes {
		return ai.BagInfo{}, errImageTooLarge
	}
	return s.analyzer.AnalyzeBagPhoto(ctx, image, mimeType)
}
