package tutorial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Run("topic match is case-insensitive", func(t *testing.T) {
		d := Detect([]string{"Python", "DOCKER"}, "")
		assert.True(t, d.Python)
		assert.True(t, d.Docker)
		assert.False(t, d.Node)
	})

	t.Run("filename markers in serialized tree", func(t *testing.T) {
		tree := `{"requirements.txt": "file", "src": "directory"}`
		d := Detect(nil, tree)
		assert.True(t, d.Python)
		assert.False(t, d.Go)
	})

	t.Run("detections are independent", func(t *testing.T) {
		tree := `{"Dockerfile": "file", "go.mod": "file", "pom.xml": "file"}`
		d := Detect([]string{"rust"}, tree)
		assert.True(t, d.Docker)
		assert.True(t, d.Go)
		assert.True(t, d.Java)
		assert.True(t, d.Rust)
		assert.True(t, d.Maven)
		assert.False(t, d.Python)
		assert.False(t, d.Compose)
	})

	t.Run("compose marker", func(t *testing.T) {
		d := Detect(nil, `{"docker-compose.yml": "file"}`)
		assert.True(t, d.Docker)
		assert.True(t, d.Compose)
	})
}

func TestSynthesize(t *testing.T) {
	t.Run("docker and python blocks in declared order", func(t *testing.T) {
		d := Detect([]string{"docker", "python"}, `{"requirements.txt": "file"}`)
		out := Synthesize(d, "https://github.com/acme/demo", "demo")

		python := strings.Index(out, "pip install -r requirements.txt")
		docker := strings.Index(out, "docker build -t demo .")
		assert.Greater(t, python, 0)
		assert.Greater(t, docker, 0)
		assert.Less(t, python, docker, "python block precedes docker block")

		assert.NotContains(t, out, "mvn clean install")
		assert.NotContains(t, out, "cargo build")
		assert.NotContains(t, out, "npm install")
	})

	t.Run("zero detections still emit boilerplate", func(t *testing.T) {
		out := Synthesize(Detection{}, "https://github.com/acme/demo", "demo")

		assert.Contains(t, out, "### 环境准备")
		assert.Contains(t, out, "### 快速开始")
		assert.Contains(t, out, "git clone https://github.com/acme/demo\ncd demo")
		assert.Contains(t, out, "### 配置说明")
		assert.Contains(t, out, "### 常见问题")

		assert.NotContains(t, out, "Python 3.8+")
		assert.NotContains(t, out, "Docker 部署方式")
		assert.NotContains(t, out, "JDK 11+")
	})

	t.Run("clone substitutes url and short name", func(t *testing.T) {
		out := Synthesize(Detection{Go: true}, "https://github.com/acme/widget", "widget")
		assert.Contains(t, out, "git clone https://github.com/acme/widget\ncd widget")
		assert.Contains(t, out, "go mod download")
	})

	t.Run("compose subsection only with compose marker", func(t *testing.T) {
		with := Synthesize(Detection{Docker: true, Compose: true}, "u", "n")
		without := Synthesize(Detection{Docker: true}, "u", "n")
		assert.Contains(t, with, "docker-compose up -d")
		assert.NotContains(t, without, "docker-compose up -d")
	})

	t.Run("gradle build when no maven marker", func(t *testing.T) {
		out := Synthesize(Detection{Java: true}, "u", "n")
		assert.Contains(t, out, "gradle build")
		assert.NotContains(t, out, "mvn clean install")
	})
}
