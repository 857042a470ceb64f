package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fadilmartias/resume-api/internal/model"
	"github.com/fadilmartias/resume-api/internal/repository"
	"github.com/fadilmartias/resume-api/internal/service"
	"github.com/fadilmartias/resume-api/internal/util"
)

var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrNoExtractableText  = errors.New("no extractable text")
	ErrEmptyQuestion      = errors.New("empty question")
	ErrCandidateNotFound  = errors.New("candidate not found")
)

type BlobStorage interface {
	Upload(ctx context.Context, path string, body []byte, contentType string) error
}

type MetadataRepository interface {
	Create(ctx context.Context, meta *model.ResumeMetadata) error
}

type CandidateRepository interface {
	Insert(ctx context.Context, record *model.CandidateRecord) error
	List(ctx context.Context) ([]model.CandidateSummary, error)
	FindByCandidateID(ctx context.Context, candidateID string) (*model.CandidateRecord, error)
}

type TextExtractor interface {
	Extract(data []byte, kind util.DocumentKind) string
}

type ResumeParser interface {
	Parse(ctx context.Context, text string) service.ParseResult
}

type CandidateAnswerer interface {
	Answer(ctx context.Context, record model.CandidateRecord, question string) (string, error)
}

type CandidateExporter interface {
	WorkbookXLSX(rows []model.CandidateSummary) ([]byte, error)
}

type Dependencies struct {
	Storage    BlobStorage
	Metadata   MetadataRepository
	Candidates CandidateRepository
	Extractor  TextExtractor
	Parser     ResumeParser
	Answerer   CandidateAnswerer
	Exporter   CandidateExporter

	// StoragePrefix is the folder blobs are written under.
	StoragePrefix string
	// CallTimeout bounds each external call; zero means no bound.
	CallTimeout time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
}

type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	CandidateID string
	Record      model.CandidateRecord
	ParseStatus service.ParseStatus
}

type ResumeUsecase struct {
	storage       BlobStorage
	metadata      MetadataRepository
	candidates    CandidateRepository
	extractor     TextExtractor
	parser        ResumeParser
	answerer      CandidateAnswerer
	exporter      CandidateExporter
	storagePrefix string
	callTimeout   time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

func NewResumeUsecase(deps Dependencies) *ResumeUsecase {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ResumeUsecase{
		storage:       deps.Storage,
		metadata:      deps.Metadata,
		candidates:    deps.Candidates,
		extractor:     deps.Extractor,
		parser:        deps.Parser,
		answerer:      deps.Answerer,
		exporter:      deps.Exporter,
		storagePrefix: deps.StoragePrefix,
		callTimeout:   deps.CallTimeout,
		logger:        deps.Logger,
		now:           deps.Now,
	}
}

// Upload runs the ingestion pipeline strictly in order: blob, metadata row, text
// extraction, structured extraction, document insert. Nothing written by an earlier
// step is rolled back when a later one fails, and nothing is retried.
func (uc *ResumeUsecase) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	log := uc.logger.With("request_id", util.RequestIDFromContext(ctx), "file_name", in.FileName)
	log.Info("resume.ingest.start", "content_type", in.ContentType, "bytes", len(in.Data))

	kind, ok := util.KindForMIME(in.ContentType)
	if !ok {
		return nil, ErrInvalidContentType
	}

	storagePath := uc.storagePath(in.FileName)
	callCtx, cancel := uc.callContext(ctx)
	err := uc.storage.Upload(callCtx, storagePath, in.Data, in.ContentType)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("object storage error: %w", err)
	}
	log.Info("resume.ingest.stored", "storage_path", storagePath)

	meta := &model.ResumeMetadata{FileName: in.FileName, StoragePath: storagePath}
	callCtx, cancel = uc.callContext(ctx)
	err = uc.metadata.Create(callCtx, meta)
	cancel()
	if err != nil {
		log.Warn("resume.ingest.orphaned_blob", "storage_path", storagePath)
		return nil, fmt.Errorf("metadata store error: %w", err)
	}
	candidateID := meta.ID.String()
	log = log.With("candidate_id", candidateID)
	log.Info("resume.ingest.metadata_saved")

	text := uc.extractor.Extract(in.Data, kind)
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoExtractableText
	}

	callCtx, cancel = uc.callContext(ctx)
	parsed := uc.parser.Parse(callCtx, text)
	cancel()
	if parsed.Degraded() {
		log.Warn("resume.ingest.degraded_extraction", "status", parsed.Status, "error", parsed.Err)
	}

	record := parsed.Record
	record.CandidateID = candidateID
	callCtx, cancel = uc.callContext(ctx)
	err = uc.candidates.Insert(callCtx, &record)
	cancel()
	if err != nil {
		log.Warn("resume.ingest.orphaned_metadata", "storage_path", storagePath)
		return nil, fmt.Errorf("document store insert error: %w", err)
	}

	log.Info("resume.ingest.done", "parse_status", parsed.Status)
	return &UploadResult{
		CandidateID: candidateID,
		Record:      record,
		ParseStatus: parsed.Status,
	}, nil
}

func (uc *ResumeUsecase) ListCandidates(ctx context.Context) ([]model.CandidateSummary, error) {
	ctx, cancel := uc.callContext(ctx)
	defer cancel()

	out, err := uc.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("document store error: %w", err)
	}
	return out, nil
}

// ExportCandidates renders the listing projection as an xlsx workbook.
func (uc *ResumeUsecase) ExportCandidates(ctx context.Context) ([]byte, error) {
	rows, err := uc.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.WorkbookXLSX(rows)
	if err != nil {
		return nil, fmt.Errorf("export error: %w", err)
	}
	return data, nil
}

func (uc *ResumeUsecase) GetCandidate(ctx context.Context, candidateID string) (*model.CandidateRecord, error) {
	ctx, cancel := uc.callContext(ctx)
	defer cancel()

	record, err := uc.candidates.FindByCandidateID(ctx, candidateID)
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("document store error: %w", err)
	}
	return record, nil
}

// Ask answers a question about one candidate. Unknown candidates never reach the model.
func (uc *ResumeUsecase) Ask(ctx context.Context, candidateID, question string) (string, error) {
	if question == "" {
		return "", ErrEmptyQuestion
	}

	record, err := uc.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}

	ctx, cancel := uc.callContext(ctx)
	defer cancel()

	answer, err := uc.answerer.Answer(ctx, *record, question)
	if err != nil {
		return "", fmt.Errorf("LLM API error: %w", err)
	}
	return answer, nil
}

// storagePath is <prefix>/<unix seconds>_<file name>. Two uploads of the same name in
// the same second share a path.
func (uc *ResumeUsecase) storagePath(fileName string) string {
	name := fmt.Sprintf("%d_%s", uc.now().Unix(), path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if uc.storagePrefix == "" {
		return name
	}
	return uc.storagePrefix + "/" + name
}

func (uc *ResumeUsecase) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.callTimeout)
}
