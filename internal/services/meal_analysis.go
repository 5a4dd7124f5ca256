package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/gemini"
	"github.com/terraincognita07/goutly/internal/models"
)

var (
	ErrInvalidInput          = errors.New("invalid analysis input")
	ErrMalformedResponse     = errors.New("malformed analysis response")
	ErrAnalysisUnavailable   = errors.New("analysis service unavailable")
	ErrMealDescriptionNeeded = fmt.Errorf("%w: meal description is empty", ErrInvalidInput)
)

const minComparedMeals = 2

const (
	AnalysisKindText     = "text"
	AnalysisKindImage    = "image"
	AnalysisKindCompare  = "compare"
	AnalysisKindForecast = "forecast"
	AnalysisKindIdeas    = "ideas"
)

const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid_input"
	OutcomeMalformed   = "malformed"
	OutcomeUnavailable = "unavailable"
	OutcomeFallback    = "fallback"
)

// ContentGenerator is the structured-generation service.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, request gemini.Request) (string, error)
}

// ImageHinter returns labels detected in a meal photo. Hints only enrich the
// prompt; a hinter failure never fails an analysis.
type ImageHinter interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

type AnalysisRecorder interface {
	ObserveAnalysis(kind string, outcome string, duration time.Duration)
}

type Translator interface {
	Translate(language string, key string) string
}

// AnalysisContext carries the optional daily intake context rendered into the prompt.
type AnalysisContext struct {
	DailyGoal     int
	ConsumedSoFar int
}

type MealAnalysisService struct {
	generator  ContentGenerator
	hinter     ImageHinter
	recorder   AnalysisRecorder
	translator Translator
	logger     logrus.FieldLogger
	now        func() time.Time
	newID      func() string
}

type MealAnalysisOption func(*MealAnalysisService)

func WithImageHinter(hinter ImageHinter) MealAnalysisOption {
	return func(service *MealAnalysisService) {
		service.hinter = hinter
	}
}

func WithAnalysisRecorder(recorder AnalysisRecorder) MealAnalysisOption {
	return func(service *MealAnalysisService) {
		service.recorder = recorder
	}
}

func WithTranslator(translator Translator) MealAnalysisOption {
	return func(service *MealAnalysisService) {
		service.translator = translator
	}
}

func WithLogger(logger logrus.FieldLogger) MealAnalysisOption {
	return func(service *MealAnalysisService) {
		if logger != nil {
			service.logger = logger
		}
	}
}

func NewMealAnalysisService(generator ContentGenerator, options ...MealAnalysisOption) *MealAnalysisService {
	service := &MealAnalysisService{
		generator: generator,
		logger:    logrus.StandardLogger(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// AnalyzeFromText analyzes a typed meal description. The result always
// echoes description verbatim (after trimming) instead of the model's paraphrase.
func (service *MealAnalysisService) AnalyzeFromText(ctx context.Context, description string, analysisContext *AnalysisContext) (models.MealAnalysis, error) {
	started := service.now()
	description = strings.TrimSpace(description)
	if description == "" {
		service.observe(AnalysisKindText, OutcomeInvalid, started)
		return models.MealAnalysis{}, ErrMealDescriptionNeeded
	}

	request := gemini.Request{
		SystemInstruction: gemini.SystemText(textAnalysisInstruction),
		Contents: []gemini.Content{
			gemini.UserContent(gemini.TextPart(buildTextAnalysisPrompt(description, analysisContext))),
		},
		GenerationConfig: mealAnalysisGenerationConfig(),
	}

	analysis, err := service.runAnalysis(ctx, AnalysisKindText, request, started)
	if err != nil {
		return models.MealAnalysis{}, err
	}
	analysis.MealDescription = description
	return analysis, nil
}

// AnalyzeFromImage analyzes a meal photo. The description comes from the
// service; caption is optional user text merged into the prompt.
func (service *MealAnalysisService) AnalyzeFromImage(ctx context.Context, image []byte, mimeType string, caption string, analysisContext *AnalysisContext) (models.MealAnalysis, error) {
	started := service.now()
	mimeType = strings.TrimSpace(mimeType)
	if len(image) == 0 {
		service.observe(AnalysisKindImage, OutcomeInvalid, started)
		return models.MealAnalysis{}, fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}
	if mimeType == "" {
		service.observe(AnalysisKindImage, OutcomeInvalid, started)
		return models.MealAnalysis{}, fmt.Errorf("%w: image mime type is empty", ErrInvalidInput)
	}

	labels := service.imageLabels(ctx, image)
	request := gemini.Request{
		SystemInstruction: gemini.SystemText(imageAnalysisInstruction),
		Contents: []gemini.Content{
			gemini.UserContent(
				gemini.TextPart(buildImageAnalysisPrompt(strings.TrimSpace(caption), labels, analysisContext)),
				gemini.Part{InlineData: &gemini.InlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			),
		},
		GenerationConfig: mealAnalysisGenerationConfig(),
	}

	analysis, err := service.runAnalysis(ctx, AnalysisKindImage, request, started)
	if err != nil {
		return models.MealAnalysis{}, err
	}
	if analysis.MealDescription == "" {
		service.logger.WithField("kind", AnalysisKindImage).Warn("analysis response has an empty meal description")
		return models.MealAnalysis{}, malformed("empty mealDescription for image analysis")
	}
	return analysis, nil
}

// CompareMeals asks for a short verdict across meals. An unusable reply
// degrades to a localized apology instead of an error; only transport
// failures are reported as ErrAnalysisUnavailable.
func (service *MealAnalysisService) CompareMeals(ctx context.Context, meals []models.MealAnalysis, language string) (string, error) {
	started := service.now()
	if len(meals) < minComparedMeals {
		service.observe(AnalysisKindCompare, OutcomeInvalid, started)
		return "", fmt.Errorf("%w: at least %d meals are required", ErrInvalidInput, minComparedMeals)
	}

	request := gemini.Request{
		SystemInstruction: gemini.SystemText(compareInstruction),
		Contents: []gemini.Content{
			gemini.UserContent(gemini.TextPart(buildComparePrompt(meals, language))),
		},
	}

	text, err := service.generator.GenerateContent(ctx, request)
	if err != nil {
		if errors.Is(err, gemini.ErrEmptyCandidate) || errors.Is(err, gemini.ErrPromptBlocked) {
			service.observe(AnalysisKindCompare, OutcomeFallback, started)
			return service.fallback(language, "fallback.compare"), nil
		}
		service.logger.WithFields(logrus.Fields{"kind": AnalysisKindCompare, "error": err}).Warn("meal comparison failed")
		service.observe(AnalysisKindCompare, OutcomeUnavailable, started)
		return "", fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	verdict := strings.TrimSpace(text)
	if verdict == "" {
		service.observe(AnalysisKindCompare, OutcomeFallback, started)
		return service.fallback(language, "fallback.compare"), nil
	}
	service.observe(AnalysisKindCompare, OutcomeSuccess, started)
	return verdict, nil
}

func (service *MealAnalysisService) runAnalysis(ctx context.Context, kind string, request gemini.Request, started time.Time) (models.MealAnalysis, error) {
	text, err := service.generator.GenerateContent(ctx, request)
	if err != nil {
		service.logger.WithFields(logrus.Fields{"kind": kind, "error": err}).Warn("meal analysis request failed")
		service.observe(kind, OutcomeUnavailable, started)
		return models.MealAnalysis{}, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	analysis, err := ParseMealAnalysis([]byte(text))
	if err != nil {
		service.logger.WithFields(logrus.Fields{"kind": kind, "error": err}).Warn("meal analysis response rejected")
		service.observe(kind, OutcomeMalformed, started)
		return models.MealAnalysis{}, err
	}

	analysis.ID = service.newID()
	analysis.AnalyzedAt = service.now()
	service.observe(kind, OutcomeSuccess, started)
	return analysis, nil
}

func (service *MealAnalysisService) imageLabels(ctx context.Context, image []byte) []string {
	if service.hinter == nil {
		return nil
	}
	labels, err := service.hinter.DetectLabels(ctx, image)
	if err != nil {
		service.logger.WithFields(logrus.Fields{"kind": AnalysisKindImage, "error": err}).Info("image label hints unavailable")
		return nil
	}
	return labels
}

func (service *MealAnalysisService) observe(kind string, outcome string, started time.Time) {
	if service.recorder == nil {
		return
	}
	service.recorder.ObserveAnalysis(kind, outcome, service.now().Sub(started))
}

func (service *MealAnalysisService) fallback(language string, key string) string {
	return translateOrDefault(service.translator, language, key)
}

func mealAnalysisGenerationConfig() *gemini.GenerationConfig {
	return &gemini.GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   MealAnalysisSchema(),
	}
}
