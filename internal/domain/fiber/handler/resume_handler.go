package handler

import (
	"errors"
	"io"

	"github.com/fadilmartias/resume-api/internal/dto"
	"github.com/fadilmartias/resume-api/internal/service"
	"github.com/fadilmartias/resume-api/internal/usecase"
	"github.com/fadilmartias/resume-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	rootMessage   = "Resume Processing API is running..."
	uploadMessage = "File uploaded and processed successfully"
)

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Root)
	app.Post("/upload", h.Upload)
	app.Get("/candidates", h.ListCandidates)
	app.Get("/candidates/export", h.ExportCandidates)
	app.Get("/candidate/:id", h.GetCandidate)
	app.Post("/ask/:id", h.Ask)
}

func (h *ResumeHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{Message: rootMessage})
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	res, err := h.uc.Upload(c.UserContext(), usecase.UploadInput{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.UploadResponse{
		Message:     uploadMessage,
		CandidateID: res.CandidateID,
		DataPreview: res.Record.Skills,
	})
}

func (h *ResumeHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.uc.ListCandidates(c.UserContext())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(candidates)
}

func (h *ResumeHandler) ExportCandidates(c *fiber.Ctx) error {
	data, err := h.uc.ExportCandidates(c.UserContext())
	if err != nil {
		return h.errorResponse(c, err)
	}
	c.Attachment("candidates.xlsx")
	c.Set(fiber.HeaderContentType, service.XLSXMediaType)
	return c.Send(data)
}

func (h *ResumeHandler) GetCandidate(c *fiber.Ctx) error {
	record, err := h.uc.GetCandidate(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(record)
}

func (h *ResumeHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid request body",
			}, err)
		}
	}

	candidateID := c.Params("id")
	answer, err := h.uc.Ask(c.UserContext(), candidateID, req.Question)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(dto.AskResponse{
		CandidateID: candidateID,
		Question:    req.Question,
		Answer:      answer,
	})
}

// errorResponse maps usecase failures onto status codes. Upstream failures keep
// their wrapped detail in the message.
func (h *ResumeHandler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidContentType):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid file type. Please upload a .pdf or .docx",
		}, err)
	case errors.Is(err, usecase.ErrNoExtractableText):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Could not extract text from file. File might be empty or corrupt.",
		}, err)
	case errors.Is(err, usecase.ErrEmptyQuestion):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No 'question' field in request body.",
		}, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Candidate not found",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: err.Error(),
		}, err)
	}
}
