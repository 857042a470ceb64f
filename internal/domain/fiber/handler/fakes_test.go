package handler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fadilmartias/resume-api/internal/model"
	"github.com/fadilmartias/resume-api/internal/repository"
	"github.com/fadilmartias/resume-api/internal/service"
	"github.com/fadilmartias/resume-api/internal/util"
	"github.com/google/uuid"
)

type fakeStorage struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeStorage) Upload(_ context.Context, path string, _ []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

type fakeMetadata struct {
	mu      sync.Mutex
	created []model.ResumeMetadata
	err     error
}

func (f *fakeMetadata) Create(_ context.Context, meta *model.ResumeMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	meta.ID = uuid.New()
	f.created = append(f.created, *meta)
	return nil
}

type fakeCandidates struct {
	mu      sync.Mutex
	order   []string
	records map[string]model.CandidateRecord
	err     error
}

func newFakeCandidates() *fakeCandidates {
	return &fakeCandidates{records: map[string]model.CandidateRecord{}}
}

func (f *fakeCandidates) Insert(_ context.Context, record *model.CandidateRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	record.Normalize()
	f.order = append(f.order, record.CandidateID)
	f.records[record.CandidateID] = *record
	return nil
}

func (f *fakeCandidates) List(_ context.Context) ([]model.CandidateSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.CandidateSummary, 0, len(f.order))
	for _, id := range f.order {
		r := f.records[id]
		out = append(out, model.CandidateSummary{CandidateID: r.CandidateID, Introduction: r.Introduction, Skills: r.Skills})
	}
	return out, nil
}

func (f *fakeCandidates) FindByCandidateID(_ context.Context, candidateID string) (*model.CandidateRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[candidateID]
	if !ok {
		return nil, repository.ErrCandidateNotFound
	}
	return &r, nil
}

// rawExtractor treats the uploaded bytes as the document text.
type rawExtractor struct{}

func (rawExtractor) Extract(data []byte, _ util.DocumentKind) string {
	return string(data)
}

// fakeChat answers extraction and question prompts separately.
type fakeChat struct {
	mu         sync.Mutex
	parseReply string
	askReply   string
	askErr     error
	parseCalls int
	askCalls   int
}

func (f *fakeChat) Complete(_ context.Context, req service.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(req.Messages) == 0 {
		return "", errors.New("no messages")
	}
	if strings.Contains(req.Messages[0].Content, "HR assistant") {
		f.askCalls++
		return f.askReply, f.askErr
	}
	f.parseCalls++
	return f.parseReply, nil
}
