package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const (
	defaultMaxLabels     = 10
	defaultMinConfidence = 75
)

var ErrEmptyImage = errors.New("image is empty")

type labelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// LabelHinter detects coarse labels in meal photos with Amazon Rekognition.
// The labels are only hints for the meal analysis prompt.
type LabelHinter struct {
	client        labelDetector
	maxLabels     int32
	minConfidence float32
}

func NewLabelHinter(ctx context.Context, region string) (*LabelHinter, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, errors.New("aws region is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newLabelHinter(rekognition.NewFromConfig(cfg)), nil
}

func newLabelHinter(client labelDetector) *LabelHinter {
	return &LabelHinter{
		client:        client,
		maxLabels:     defaultMaxLabels,
		minConfidence: defaultMinConfidence,
	}
}

// DetectLabels returns distinct label names, most confident first.
func (hinter *LabelHinter) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	out, err := hinter.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(hinter.maxLabels),
		MinConfidence: aws.Float32(hinter.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	seen := make(map[string]struct{}, len(out.Labels))
	labels := make([]string, 0, len(out.Labels))
	for _, label := range out.Labels {
		name := strings.TrimSpace(aws.ToString(label.Name))
		if name == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(name)]; ok {
			continue
		}
		seen[strings.ToLower(name)] = struct{}{}
		labels = append(labels, name)
	}
	return labels, nil
}
