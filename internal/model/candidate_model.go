package model

import (
	"encoding/json"
	"unicode/utf8"
)

// IntroductionLength is the number of characters of resume text kept as the introduction.
const IntroductionLength = 250

// Section is a free-text block such as education or experience. An empty Summary
// renders as an empty object. Keys other than summary are kept in Extra and written
// alongside it.
type Section struct {
	Summary string         `bson:"summary,omitempty" json:"-"`
	Extra   map[string]any `bson:",inline" json:"-"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.Summary != "" {
		out["summary"] = s.Summary
	}
	return json.Marshal(out)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Section{}
	if summary, ok := raw["summary"].(string); ok {
		s.Summary = summary
	}
	delete(raw, "summary")
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// CandidateRecord is the structured resume stored in the document store, keyed by the
// stringified ResumeMetadata ID.
type CandidateRecord struct {
	CandidateID    string   `bson:"candidate_id" json:"candidate_id"`
	Education      Section  `bson:"education" json:"education"`
	Experience     Section  `bson:"experience" json:"experience"`
	Skills         []string `bson:"skills" json:"skills"`
	Certifications []string `bson:"certifications" json:"certifications"`
	Projects       []string `bson:"projects" json:"projects"`
	Hobbies        []string `bson:"hobbies" json:"hobbies"`
	Introduction   string   `bson:"introduction" json:"introduction"`
}

// CandidateSummary is the listing projection of a CandidateRecord.
type CandidateSummary struct {
	CandidateID  string   `bson:"candidate_id" json:"candidate_id"`
	Introduction string   `bson:"introduction" json:"introduction"`
	Skills       []string `bson:"skills" json:"skills"`
}

// NewEmptyCandidateRecord returns a record with every list present and empty and the
// introduction computed from text.
func NewEmptyCandidateRecord(text string) CandidateRecord {
	r := CandidateRecord{Introduction: Introduction(text)}
	r.Normalize()
	return r
}

// Normalize replaces nil lists with empty ones so the stored and rendered shape never
// contains nulls.
func (r *CandidateRecord) Normalize() {
	r.Skills = nonNil(r.Skills)
	r.Certifications = nonNil(r.Certifications)
	r.Projects = nonNil(r.Projects)
	r.Hobbies = nonNil(r.Hobbies)
}

func (s *CandidateSummary) Normalize() {
	s.Skills = nonNil(s.Skills)
}

// String renders the whole record as indented JSON.
func (r CandidateRecord) String() string {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// Introduction keeps the first IntroductionLength characters of text and appends "...",
// even when text is shorter.
func Introduction(text string) string {
	if utf8.RuneCountInString(text) <= IntroductionLength {
		return text + "..."
	}
	return string([]rune(text)[:IntroductionLength]) + "..."
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
