package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/iosxx/github-project-analyzer/internal/analyze"
	"github.com/iosxx/github-project-analyzer/internal/config"
	"github.com/iosxx/github-project-analyzer/internal/github"
	"github.com/iosxx/github-project-analyzer/internal/llm"
	"github.com/iosxx/github-project-analyzer/internal/models"
	"github.com/iosxx/github-project-analyzer/internal/render"
)

// Fetcher retrieves repository data. Only FetchMetadata may fail; the other
// calls degrade to empty values on their own.
type Fetcher interface {
	FetchMetadata(ctx context.Context, owner, repo string) (*models.RepoMetadata, error)
	FetchReadme(ctx context.Context, owner, repo string) string
	FetchFileTree(ctx context.Context, owner, repo string) []models.FileTreeEntry
	FetchLanguages(ctx context.Context, owner, repo string) models.LanguageStats
}

// Generator produces the narrative text. Never fails; errors come back as
// literal message strings.
type Generator interface {
	Generate(ctx context.Context, in llm.PromptInput, tpl analyze.Template) string
}

type AnalyzeOptions struct {
	ResultsPath string
	MetaPath    string
	Template    analyze.Template
}

// Analyze runs the sequential fetch → generate → parse → assemble pass and
// writes the result and meta artifacts. A metadata-fetch failure
// short-circuits to the fallback record and is not an error.
func Analyze(ctx context.Context, cfg *config.Config, fetcher Fetcher, gen Generator, opts AnalyzeOptions) error {
	fmt.Printf("📊 开始分析仓库: %s\n", cfg.RepoURL)
	fmt.Printf("🤖 使用模型: %s\n", cfg.OpenAIModel)
	fmt.Printf("🔗 API 端点: %s\n", cfg.OpenAIBaseURL)

	owner, repo, err := github.ParseRepoURL(cfg.RepoURL)
	if err != nil {
		return err
	}
	fmt.Printf("📁 仓库: %s/%s\n", owner, repo)

	result, err := analyzeRepository(ctx, cfg, fetcher, gen, opts.Template, owner, repo)
	if err != nil {
		return err
	}

	meta := &models.AnalysisMeta{
		RepoURL:    cfg.RepoURL,
		AnalyzedAt: time.Now().Format(time.RFC3339),
		Title:      cfg.TitleOverride,
		Model:      cfg.OpenAIModel,
		APIBase:    cfg.OpenAIBaseURL,
	}

	if err := writeJSON(opts.ResultsPath, result); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if err := writeJSON(opts.MetaPath, meta); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	fmt.Printf("📁 结果已保存到 %s\n", opts.ResultsPath)
	return nil
}

func analyzeRepository(ctx context.Context, cfg *config.Config, fetcher Fetcher, gen Generator, tpl analyze.Template, owner, repo string) (*models.AnalysisResult, error) {
	fmt.Println("📥 获取仓库信息...")
	meta, err := fetcher.FetchMetadata(ctx, owner, repo)
	if err != nil {
		fmt.Printf("❌ 获取仓库信息失败: %v\n", err)
		return analyze.FallbackResult(owner, repo, err.Error()), nil
	}

	fmt.Println("📄 获取 README...")
	readme := fetcher.FetchReadme(ctx, owner, repo)

	fmt.Println("📂 获取文件结构...")
	tree := fetcher.FetchFileTree(ctx, owner, repo)

	fmt.Println("💻 获取语言统计...")
	langs := fetcher.FetchLanguages(ctx, owner, repo)

	fmt.Println("🧠 AI 分析中...")
	response := gen.Generate(ctx, llm.PromptInput{
		Meta:      meta,
		Languages: langs,
		Tree:      tree,
		Readme:    readme,
	}, tpl)

	sections := analyze.ParseSections(response)
	result := analyze.Assemble(tpl, sections, meta, langs, tree)

	fmt.Println("✅ 分析完成！")
	return result, nil
}

type RenderOptions struct {
	ResultsPath  string
	MetaPath     string
	OutPath      string
	FilenamePath string
}

// Render reads the two artifacts written by Analyze and produces the Markdown
// document plus the filename artifact.
func Render(opts RenderOptions) error {
	var result models.AnalysisResult
	if err := readJSON(opts.ResultsPath, &result); err != nil {
		return fmt.Errorf("reading results: %w", err)
	}

	var meta models.AnalysisMeta
	if err := readJSON(opts.MetaPath, &meta); err != nil {
		return fmt.Errorf("reading meta: %w", err)
	}

	doc, err := render.Document(&result, &meta)
	if err != nil {
		return err
	}
	filename := render.Filename(&meta)

	if err := os.WriteFile(opts.OutPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err := os.WriteFile(opts.FilenamePath, []byte(filename), 0o644); err != nil {
		return fmt.Errorf("writing filename: %w", err)
	}

	fmt.Printf("Generated markdown file: %s\n", filename)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
