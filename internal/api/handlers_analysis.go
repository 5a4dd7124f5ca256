package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

const maxImageBytes = 8 << 20

var supportedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/heic": {},
	"image/heif": {},
}

func (handler *Handler) AnalyzeText(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := textAnalysisInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	analysisContext, err := handler.dailyAnalysisContext(user, input.UseDailyContext)
	if err != nil {
		return handler.internalError(c, "daily context", err)
	}

	analysis, err := handler.analysisService.AnalyzeFromText(c.UserContext(), input.Description, analysisContext)
	if err != nil {
		return handler.analysisError(c, services.AnalysisKindText, err)
	}
	return handler.respondAnalysis(c, user, analysis)
}

func (handler *Handler) AnalyzeImage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}
	if fileHeader.Size > maxImageBytes {
		return handler.apiError(c, fiber.StatusRequestEntityTooLarge, "error.image_too_large")
	}

	image, err := readUploadedImage(fileHeader)
	if err != nil {
		return handler.internalError(c, "read image", err)
	}
	mimeType := detectImageType(fileHeader.Header.Get(fiber.HeaderContentType), image)
	if _, supported := supportedImageTypes[mimeType]; !supported && len(image) > 0 {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_image")
	}

	useDailyContext, _ := strconv.ParseBool(c.FormValue("useDailyContext"))
	analysisContext, err := handler.dailyAnalysisContext(user, useDailyContext)
	if err != nil {
		return handler.internalError(c, "daily context", err)
	}

	analysis, err := handler.analysisService.AnalyzeFromImage(c.UserContext(), image, mimeType, c.FormValue("caption"), analysisContext)
	if err != nil {
		return handler.analysisError(c, services.AnalysisKindImage, err)
	}
	return handler.respondAnalysis(c, user, analysis)
}

func (handler *Handler) CompareMeals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := compareInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}
	if len(input.IDs) < 2 {
		return handler.apiError(c, fiber.StatusBadRequest, "error.compare_needs_two")
	}

	meals, err := handler.collections.FindAnalyses(user.ID, input.IDs)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			return handler.apiError(c, fiber.StatusNotFound, "error.analysis_not_found")
		}
		return handler.internalError(c, "compare lookup", err)
	}

	verdict, err := handler.analysisService.CompareMeals(c.UserContext(), meals, handler.requestLanguage(c))
	if err != nil {
		return handler.analysisError(c, services.AnalysisKindCompare, err)
	}
	return c.JSON(fiber.Map{"comparison": verdict})
}

// respondAnalysis appends a successful analysis to history. A history write
// failure is logged and does not hide the analysis from the caller.
func (handler *Handler) respondAnalysis(c *fiber.Ctx, user *models.User, analysis models.MealAnalysis) error {
	if _, err := handler.collections.RecordAnalysis(user.ID, analysis); err != nil {
		handler.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).Warn("record analysis history failed")
	}

	language := handler.requestLanguage(c)
	return c.JSON(fiber.Map{
		"analysis":  analysis,
		"riskLabel": handler.i18n.Label(language, "risk", string(analysis.OverallRiskLevel)),
	})
}

func (handler *Handler) dailyAnalysisContext(user *models.User, enabled bool) (*services.AnalysisContext, error) {
	if !enabled {
		return nil, nil
	}
	budget, err := handler.intakeService.DailyBudget(user.ID, handler.today(), handler.location)
	if err != nil {
		return nil, err
	}
	return &services.AnalysisContext{
		DailyGoal:     budget.Goal,
		ConsumedSoFar: budget.ConsumedTotal,
	}, nil
}

func readUploadedImage(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxImageBytes))
}

func detectImageType(declared string, image []byte) string {
	mimeType := strings.ToLower(strings.TrimSpace(declared))
	if separator := strings.Index(mimeType, ";"); separator >= 0 {
		mimeType = strings.TrimSpace(mimeType[:separator])
	}
	if mimeType != "" && mimeType != "application/octet-stream" {
		return mimeType
	}
	if len(image) == 0 {
		return ""
	}
	return http.DetectContentType(image)
}
