package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// RepoMetadata is an immutable snapshot of a hosted repository, populated
// once per run from the GitHub API.
type RepoMetadata struct {
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description *string    `json:"description"`
	Language    *string    `json:"language"`
	Stars       int        `json:"stargazers_count"`
	Forks       int        `json:"forks_count"`
	Topics      []string   `json:"topics"`
	License     *string    `json:"license"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	OpenIssues  int        `json:"open_issues_count"`
	Watchers    int        `json:"watchers_count"`
}

// FileTreeEntry is one entry of the shallow file listing. Type is "file" or
// "directory".
type FileTreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// TreeMap converts a file listing into the path→kind object form used in
// serialized artifacts.
func TreeMap(entries []FileTreeEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Path] = e.Type
	}
	return m
}

// LanguageStats maps language names to byte counts. Names keeps the order
// the API returned the keys in, which drives keyword derivation.
type LanguageStats struct {
	Names []string
	Bytes map[string]int
}

// FirstNames returns up to n language names in response order.
func (s LanguageStats) FirstNames(n int) []string {
	if len(s.Names) < n {
		n = len(s.Names)
	}
	out := make([]string, n)
	copy(out, s.Names[:n])
	return out
}

func (s *LanguageStats) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("language stats: expected object, got %v", tok)
	}

	s.Names = nil
	s.Bytes = make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("language stats: unexpected key %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		s.Names = append(s.Names, name)
		s.Bytes[name] = count
	}
	return nil
}

// MarshalJSON writes the object with keys in response order rather than the
// sorted order a plain map would produce.
func (s LanguageStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", s.Bytes[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NarrativeSections maps section headings (exactly as emitted by the model)
// to section bodies. Duplicate headings overwrite: last write wins.
type NarrativeSections map[string]string

// AnalysisResult is the assembled output record, serialized as
// analysis_results.json. Immutable after assembly.
type AnalysisResult struct {
	LongSummary          string            `json:"long_summary"`
	ShortSummary         string            `json:"short_summary"`
	ReviewReport         string            `json:"review_report"`
	Keywords             []string          `json:"keywords"`
	GitHubTopics         []string          `json:"github_topics"`
	FileStructure        map[string]string `json:"file_structure"`
	MissingDocumentation []string          `json:"missing_documentation"`
	SuggestedTitle       string            `json:"suggested_title"`
	TechAnalysis         string            `json:"tech_analysis,omitempty"`
	RepoInfo             *RepoSummary      `json:"repo_info,omitempty"`
}

// RepoSummary is the condensed repo_info block embedded in AnalysisResult.
type RepoSummary struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description *string  `json:"description"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	License     *string  `json:"license"`
}

// AnalysisMeta is run-level provenance, serialized as analysis_meta.json.
type AnalysisMeta struct {
	RepoURL    string `json:"repo_url"`
	AnalyzedAt string `json:"analyzed_at"`
	Title      string `json:"title"`
	Model      string `json:"openai_model"`
	APIBase    string `json:"openai_api_base"`
}
