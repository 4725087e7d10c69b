package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iosxx/github-project-analyzer/internal/analyze"
	"github.com/iosxx/github-project-analyzer/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const (
	systemPrompt = "你是一个专业的 GitHub 项目分析师。请根据提供的仓库信息，生成详细的项目分析报告。\n请用中文回答，分析要客观、专业、有深度。"

	// notConfigured stands in for model output when no API key is set. It
	// flows through the parser and assembler like any other narrative text.
	notConfigured = "未配置 OpenAI API Key"

	generateTimeout = 120 * time.Second
	maxReadmeChars  = 3000
	maxTreePaths    = 50
)

// Client calls the chat-completions API to produce the narrative analysis.
type Client struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: apiKey,
	}
}

// PromptInput carries everything the prompt interpolates.
type PromptInput struct {
	Meta      *models.RepoMetadata
	Languages models.LanguageStats
	Tree      []models.FileTreeEntry
	Readme    string
}

// Generate returns the model's prose for the repository. It never returns an
// error: a missing key or a failed call yields a literal message string that
// downstream treats as ordinary (low-quality) narrative text.
func (c *Client) Generate(ctx context.Context, in PromptInput, tpl analyze.Template) string {
	if c.apiKey == "" {
		return notConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(in, tpl)},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		fmt.Printf("OpenAI API 调用失败: %v\n", err)
		return fmt.Sprintf("AI 分析失败: %s", err)
	}
	if len(resp.Choices) == 0 {
		return "AI 分析失败: 未返回任何内容"
	}
	return resp.Choices[0].Message.Content
}

// BuildPrompt assembles the user prompt. The requested headings come from the
// template so they always match the assembler's lookup table.
func BuildPrompt(in PromptInput, tpl analyze.Template) string {
	var b strings.Builder
	b.WriteString("请分析以下 GitHub 仓库并提供详细报告：\n\n")
	b.WriteString(buildContext(in))
	b.WriteString("\n\n请按以下格式提供分析（每个部分用 ### 标题分隔）：\n")
	for _, s := range tpl.Sections() {
		fmt.Fprintf(&b, "\n### %s\n%s\n", s.Heading, s.Hint)
	}
	return b.String()
}

func buildContext(in PromptInput) string {
	meta := in.Meta

	desc := "无描述"
	if meta.Description != nil && *meta.Description != "" {
		desc = *meta.Description
	}
	lang := "未知"
	if meta.Language != nil && *meta.Language != "" {
		lang = *meta.Language
	}
	license := "未知"
	if meta.License != nil && *meta.License != "" {
		license = *meta.License
	}

	langJSON, _ := json.Marshal(in.Languages)

	paths := make([]string, 0, maxTreePaths)
	for i, e := range in.Tree {
		if i >= maxTreePaths {
			break
		}
		paths = append(paths, e.Path)
	}
	pathsJSON, _ := json.MarshalIndent(paths, "", "  ")

	readme := "无 README"
	if in.Readme != "" {
		r := []rune(in.Readme)
		if len(r) > maxReadmeChars {
			r = r[:maxReadmeChars]
		}
		readme = string(r)
	}

	return fmt.Sprintf(`仓库名称: %s
描述: %s
主要语言: %s
Star 数: %d
Fork 数: %d
主题标签: %s
许可证: %s

语言统计: %s

文件结构 (部分):
%s

README 内容 (前 3000 字符):
%s`,
		meta.Name, desc, lang, meta.Stars, meta.Forks,
		strings.Join(meta.Topics, ", "), license,
		langJSON, pathsJSON, readme)
}
