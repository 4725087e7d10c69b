package analyze

import (
	"fmt"
	"strings"

	"github.com/iosxx/github-project-analyzer/internal/models"
)

// Literal fallbacks applied when a section is absent or empty.
const (
	fallbackDescription  = "暂无描述"
	fallbackShortSummary = "请查看项目 README"
	fallbackNoMissing    = "暂无明显缺失"
)

// maxKeywordLanguages caps how many language names feed the keyword list.
const maxKeywordLanguages = 5

// docTerms is the fixed list of documentation-related terms scanned for in
// the improvement section. Emission follows this order, not the order of
// appearance in the text.
var docTerms = []string{"文档", "说明", "README", "API", "示例", "教程", "注释"}

// Assemble maps parsed sections plus raw metadata into the output record.
// Each field takes the body at its known heading when present and non-empty,
// otherwise its fixed fallback. Pure function of its inputs.
func Assemble(tpl Template, sections models.NarrativeSections, meta *models.RepoMetadata, langs models.LanguageStats, tree []models.FileTreeEntry) *models.AnalysisResult {
	topics := meta.Topics
	if len(topics) == 0 {
		topics = langs.FirstNames(maxKeywordLanguages)
	}

	// Topics concatenated with language names, duplicates preserved.
	keywords := make([]string, 0, len(topics)+maxKeywordLanguages)
	keywords = append(keywords, topics...)
	keywords = append(keywords, langs.FirstNames(maxKeywordLanguages)...)

	descFallback := fallbackDescription
	if meta.Description != nil && *meta.Description != "" {
		descFallback = *meta.Description
	}

	result := &models.AnalysisResult{
		LongSummary:          sectionOr(sections, HeadingOverview, descFallback),
		ShortSummary:         sectionOr(sections, HeadingFeatures, fallbackShortSummary),
		TechAnalysis:         sections[HeadingTechnology],
		Keywords:             keywords,
		GitHubTopics:         topics,
		FileStructure:        models.TreeMap(tree),
		MissingDocumentation: missingDocs(sections[HeadingImprove]),
		SuggestedTitle:       fmt.Sprintf("使用 %s 提升开发效率", meta.Name),
		ReviewReport:         fmt.Sprintf("%s\n\n%s", sections[HeadingStrengths], sections[HeadingImprove]),
		RepoInfo: &models.RepoSummary{
			Name:        meta.Name,
			FullName:    meta.FullName,
			Description: meta.Description,
			Stars:       meta.Stars,
			Forks:       meta.Forks,
			Language:    meta.Language,
			Topics:      topics,
			License:     meta.License,
		},
	}

	if tpl == TemplateShort {
		// Review-type headings are not requested by the short prompt, so
		// their fields keep the same shape they would have with absent
		// sections even if the model volunteers them.
		result.ReviewReport = "\n\n"
		result.MissingDocumentation = missingDocs("")
		return result
	}

	if v := sections[HeadingUseCases]; v != "" {
		result.SuggestedTitle = v
	}
	return result
}

// FallbackResult is the pre-built record substituted when the metadata fetch
// fails. It echoes the error text and keeps the renderer able to produce a
// valid, if sparse, document.
func FallbackResult(owner, repo, errText string) *models.AnalysisResult {
	return &models.AnalysisResult{
		LongSummary:          fmt.Sprintf("无法获取仓库 %s/%s 的详细信息。错误: %s", owner, repo, errText),
		ShortSummary:         fmt.Sprintf("%s 是一个 GitHub 项目", repo),
		ReviewReport:         "由于 API 限制，无法完成完整分析",
		Keywords:             []string{repo, owner, "github"},
		GitHubTopics:         []string{},
		FileStructure:        map[string]string{},
		MissingDocumentation: []string{"需要手动查看项目"},
		SuggestedTitle:       fmt.Sprintf("探索 %s 项目", repo),
	}
}

func sectionOr(sections models.NarrativeSections, heading, fallback string) string {
	if v := sections[heading]; v != "" {
		return v
	}
	return fallback
}

// missingDocs scans the improvement text case-insensitively for each known
// documentation term and synthesizes one suggestion per hit, in term order.
func missingDocs(improveText string) []string {
	lower := strings.ToLower(improveText)

	var docs []string
	for _, term := range docTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			docs = append(docs, "完善"+term)
		}
	}
	if len(docs) == 0 {
		return []string{fallbackNoMissing}
	}
	return docs
}
