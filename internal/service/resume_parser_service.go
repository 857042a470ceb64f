package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fadilmartias/resume-api/internal/model"
	"github.com/tidwall/gjson"
)

const (
	parserMaxTokens   = 1024
	parserTemperature = 0.1

	parserSystemPrompt = "You are an expert resume parser. Analyze the resume text provided and extract the information. Return *only* a valid JSON object in the exact format requested."

	parserUserPrompt = `
JSON Format:
{
  "education": {"summary": "List all degrees and universities"},
  "experience": {"summary": "List all job titles, companies, and responsibilities"},
  "skills": ["list", "of", "all", "technical", "skills"],
  "certifications": ["list", "of", "all", "certifications"],
  "projects": ["list", "of", "all", "project", "titles"]
}

Resume Text:
---
%s
---

Here is the JSON object:
`

	invalidJSONEducationPrefix = "LLM returned invalid JSON: "
	invalidJSONExperience      = "LLM response was not valid JSON."
)

// ParseStatus tells how a CandidateRecord was produced.
type ParseStatus string

const (
	ParseOK                ParseStatus = "ok"
	ParseDegradedEmpty     ParseStatus = "degraded_empty"
	ParseDegradedMalformed ParseStatus = "degraded_malformed"
)

// ParseResult always carries a shape-stable Record. Raw holds the model output when one
// was received and Err the transport failure for ParseDegradedEmpty.
type ParseResult struct {
	Record model.CandidateRecord
	Status ParseStatus
	Raw    string
	Err    error
}

func (r ParseResult) Degraded() bool {
	return r.Status != ParseOK
}

type ResumeParserService struct {
	llm    ChatCompleter
	logger *slog.Logger
}

func NewResumeParserService(llm ChatCompleter, logger *slog.Logger) *ResumeParserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeParserService{llm: llm, logger: logger}
}

// Parse asks the model to structure text. It never fails: transport errors and
// unparseable output are turned into degraded records.
func (s *ResumeParserService) Parse(ctx context.Context, text string) ParseResult {
	s.logger.Info("resume.parse.start", "text_len", len(text))

	content, err := s.llm.Complete(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: parserSystemPrompt},
			{Role: RoleUser, Content: fmt.Sprintf(parserUserPrompt, text)},
		},
		MaxTokens:   parserMaxTokens,
		Temperature: Float64(parserTemperature),
	})
	if err != nil {
		s.logger.Error("resume.parse.llm_error", "error", err)
		return ParseResult{
			Record: model.NewEmptyCandidateRecord(text),
			Status: ParseDegradedEmpty,
			Err:    err,
		}
	}

	raw := strings.TrimSpace(content)
	s.logger.Debug("resume.parse.raw", "raw", raw)

	record, ok := recordFromJSON(cleanJSON(raw), text)
	if !ok {
		s.logger.Warn("resume.parse.invalid_json", "raw_len", len(raw))
		record = model.NewEmptyCandidateRecord(text)
		record.Education.Summary = invalidJSONEducationPrefix + raw
		record.Experience.Summary = invalidJSONExperience
		return ParseResult{Record: record, Status: ParseDegradedMalformed, Raw: raw}
	}

	s.logger.Info("resume.parse.ok", "skills", len(record.Skills), "projects", len(record.Projects))
	return ParseResult{Record: record, Status: ParseOK, Raw: raw}
}

// recordFromJSON merges a model JSON object into an empty record. Only absent or null
// fields keep their empty default; values of an unexpected shape are kept in the closest
// form the record can hold. Hobbies and introduction are never taken from the model.
func recordFromJSON(raw, text string) (model.CandidateRecord, bool) {
	if !gjson.Valid(raw) {
		return model.CandidateRecord{}, false
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return model.CandidateRecord{}, false
	}
	fields := objectFields(root)

	record := model.NewEmptyCandidateRecord(text)
	record.Education = sectionFrom(fields["education"])
	record.Experience = sectionFrom(fields["experience"])
	record.Skills = stringsFrom(fields["skills"])
	record.Certifications = stringsFrom(fields["certifications"])
	record.Projects = stringsFrom(fields["projects"])
	return record, true
}

// objectFields indexes an object's members. A repeated key keeps its last value.
func objectFields(obj gjson.Result) map[string]gjson.Result {
	fields := map[string]gjson.Result{}
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

func sectionFrom(v gjson.Result) model.Section {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return model.Section{}
	case !v.IsObject():
		return model.Section{Summary: v.String()}
	}

	fields := objectFields(v)
	summary, ok := fields["summary"]
	delete(fields, "summary")
	if !ok || summary.Type == gjson.Null {
		if len(fields) == 0 {
			return model.Section{}
		}
		return model.Section{Summary: v.Raw}
	}

	section := model.Section{Summary: summary.String()}
	if len(fields) > 0 {
		section.Extra = make(map[string]any, len(fields))
		for k, f := range fields {
			section.Extra[k] = f.Value()
		}
	}
	return section
}

func stringsFrom(v gjson.Result) []string {
	out := []string{}
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return out
	case !v.IsArray():
		return append(out, v.String())
	}
	for _, item := range v.Array() {
		if item.Type == gjson.Null {
			continue
		}
		out = append(out, item.String())
	}
	return out
}

// cleanJSON strips a surrounding Markdown code fence, if any.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
