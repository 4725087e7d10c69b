package main

import (
	"context"
	"errors"
	"os"

	"github.com/iosxx/github-project-analyzer/internal/analyze"
	"github.com/iosxx/github-project-analyzer/internal/config"
	"github.com/iosxx/github-project-analyzer/internal/github"
	"github.com/iosxx/github-project-analyzer/internal/llm"
	"github.com/iosxx/github-project-analyzer/internal/pipeline"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "repo-analyzer",
		Short: "GitHub repository → AI analysis → Hugo markdown",
	}

	root.AddCommand(analyzeCmd(), renderCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	var resultsPath, metaPath, templateName string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fetch repo metadata, run AI analysis, write JSON artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			if cfg.RepoURL == "" {
				return errors.New("错误: 未提供 REPO_URL")
			}

			tpl, err := analyze.ParseTemplate(templateName)
			if err != nil {
				return err
			}

			fetcher := github.NewClient(ctx, cfg.GitHubToken)
			gen := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

			return pipeline.Analyze(ctx, cfg, fetcher, gen, pipeline.AnalyzeOptions{
				ResultsPath: resultsPath,
				MetaPath:    metaPath,
				Template:    tpl,
			})
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "analysis_results.json", "Path for the result record")
	cmd.Flags().StringVar(&metaPath, "meta", "analysis_meta.json", "Path for the run metadata record")
	cmd.Flags().StringVar(&templateName, "template", "long", "Analysis template (long or short)")
	return cmd
}

func renderCmd() *cobra.Command {
	var resultsPath, metaPath, outPath, filenamePath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Read JSON artifacts, write the Hugo markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return pipeline.Render(pipeline.RenderOptions{
				ResultsPath:  resultsPath,
				MetaPath:     metaPath,
				OutPath:      outPath,
				FilenamePath: filenamePath,
			})
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "analysis_results.json", "Path of the result record")
	cmd.Flags().StringVar(&metaPath, "meta", "analysis_meta.json", "Path of the run metadata record")
	cmd.Flags().StringVar(&outPath, "out", "analysis.md", "Path for the rendered document")
	cmd.Flags().StringVar(&filenamePath, "filename-out", "filename.txt", "Path for the filename artifact")
	return cmd
}
