// Package render interpolates the assembled analysis into a Hugo-ready
// Markdown document with a front-matter header.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/iosxx/github-project-analyzer/internal/models"
	"github.com/iosxx/github-project-analyzer/internal/tutorial"
)

const (
	// maxTreeJSONChars bounds the rendered file-tree JSON; anything longer
	// gets the visible truncation marker appended. Both values are part of
	// the reproducible output contract.
	maxTreeJSONChars = 2000
	truncationMarker = "\n... (结构过长已截断)"

	maxTags         = 5
	maxKeywordsLine = 10
)

const docTemplateText = `---
title: "{{.Title}}"
date: {{.Date}}
categories:
  - "项目分析"
tags: {{.Tags}}
draft: false
slug: "{{.RepoName}}-analysis"
description: "GitHub 项目 {{.RepoName}} 的 AI 分析报告，包含项目概述、技术栈分析、优缺点评价和搭建教程"
---

## 基本信息

| 属性 | 值 |
|------|----|
| 仓库地址 | [{{.RepoURL}}]({{.RepoURL}}) |
| 仓库所有者 | {{.Owner}} |
| 项目名称 | {{.RepoName}} |
| 分析时间 | {{.Date}} |
| AI 模型 | {{.Model}} |

## 项目概述

{{.LongSummary}}

## 核心功能

{{.ShortSummary}}

## 技术栈

**主要技术**：{{.TechStack}}

**关键词**：{{.KeywordsLine}}

## 项目结构

<details>
<summary>点击展开项目结构</summary>

{{.Fence}}json
{{.FileStructure}}
{{.Fence}}

</details>

## 优缺点分析

{{.ReviewReport}}

## 待改进项

{{.MissingDocs}}

## 搭建教程

{{.Tutorial}}

## 推荐用途

{{.SuggestedTitle}}

## 许可证

请查看项目仓库中的 LICENSE 文件了解详细信息。

---

> 📝 **声明**：本分析由 AI（{{.Model}}）自动生成，仅供参考。建议结合项目官方文档进行验证。
>
> 🔗 **生成工具**：[GitHub Project Analyzer](https://github.com/iosxx/github-project-analyzer)
`

var docTemplate = template.Must(template.New("analysis").Parse(docTemplateText))

type docData struct {
	Title          string
	Date           string
	Tags           string
	RepoName       string
	RepoURL        string
	Owner          string
	Model          string
	LongSummary    string
	ShortSummary   string
	TechStack      string
	KeywordsLine   string
	FileStructure  string
	ReviewReport   string
	MissingDocs    string
	Tutorial       string
	SuggestedTitle string
	Fence          string
}

// Document renders the full Markdown document for one analysis run.
func Document(result *models.AnalysisResult, meta *models.AnalysisMeta) (string, error) {
	repoName := ShortName(meta.RepoURL)
	owner := ownerOf(meta.RepoURL)
	date := isoDate(meta.AnalyzedAt)

	title := meta.Title
	if title == "" {
		title = "项目分析：" + repoName
	}
	model := meta.Model
	if model == "" {
		model = "unknown"
	}

	tags := result.Keywords
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	if len(tags) == 0 {
		tags = []string{"项目分析"}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshaling tags: %w", err)
	}

	treeJSON, err := json.MarshalIndent(result.FileStructure, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling file structure: %w", err)
	}
	treeStr := string(treeJSON)

	missing := "暂无缺失文档信息"
	if len(result.MissingDocumentation) > 0 {
		lines := make([]string, len(result.MissingDocumentation))
		for i, doc := range result.MissingDocumentation {
			lines[i] = "- " + doc
		}
		missing = strings.Join(lines, "\n")
	}

	techStack := "未识别"
	if len(result.GitHubTopics) > 0 {
		techStack = strings.Join(result.GitHubTopics, ", ")
	}

	keywordsLine := "未提取"
	if len(result.Keywords) > 0 {
		kw := result.Keywords
		if len(kw) > maxKeywordsLine {
			kw = kw[:maxKeywordsLine]
		}
		keywordsLine = strings.Join(kw, ", ")
	}

	detected := tutorial.Detect(result.GitHubTopics, treeStr)
	tut := tutorial.Synthesize(detected, meta.RepoURL, repoName)

	data := docData{
		Title:          title,
		Date:           date,
		Tags:           string(tagsJSON),
		RepoName:       repoName,
		RepoURL:        meta.RepoURL,
		Owner:          owner,
		Model:          model,
		LongSummary:    orPlaceholder(result.LongSummary, "暂无项目概述"),
		ShortSummary:   orPlaceholder(result.ShortSummary, "暂无功能描述"),
		TechStack:      techStack,
		KeywordsLine:   keywordsLine,
		FileStructure:  truncate(treeStr, maxTreeJSONChars),
		ReviewReport:   orPlaceholder(result.ReviewReport, "暂无分析结果"),
		MissingDocs:    missing,
		Tutorial:       tut,
		SuggestedTitle: orPlaceholder(result.SuggestedTitle, "请参考项目 README 了解具体用途"),
		Fence:          "```",
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return buf.String(), nil
}

// Filename derives the output filename from the analysis date and the
// repository short name: <ISO-date>-<name>-analysis.md.
func Filename(meta *models.AnalysisMeta) string {
	return fmt.Sprintf("%s-%s-analysis.md", isoDate(meta.AnalyzedAt), ShortName(meta.RepoURL))
}

// ShortName is the final path segment of the repository URL with a .git
// suffix stripped.
func ShortName(repoURL string) string {
	parts := strings.Split(repoURL, "/")
	return strings.TrimSuffix(parts[len(parts)-1], ".git")
}

func ownerOf(repoURL string) string {
	parts := strings.Split(repoURL, "/")
	if len(parts) > 1 {
		return parts[len(parts)-2]
	}
	return "unknown"
}

func isoDate(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationMarker
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
