// Package tutorial composes deployment instructions from heuristically
// detected technology signals: topic tags and marker filenames in the
// serialized file tree.
package tutorial

import (
	"fmt"
	"strings"
)

// Detection holds one independent boolean per technology profile. Several
// may be true at once; Synthesize emits a block for each in declared order
// (Python, Node, Docker, Go, Rust, Java).
type Detection struct {
	Python bool
	Node   bool
	Docker bool
	Go     bool
	Rust   bool
	Java   bool

	// Compose and Maven refine the Docker and Java blocks.
	Compose bool
	Maven   bool
}

// Detect tests each profile by case-insensitive topic membership or by
// substring presence of a marker filename in the serialized tree.
func Detect(topics []string, treeSerialized string) Detection {
	topicSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		topicSet[strings.ToLower(t)] = true
	}
	tree := strings.ToLower(treeSerialized)

	return Detection{
		Python:  topicSet["python"] || strings.Contains(tree, "requirements.txt") || strings.Contains(tree, "setup.py"),
		Node:    topicSet["javascript"] || topicSet["nodejs"] || strings.Contains(tree, "package.json"),
		Docker:  topicSet["docker"] || strings.Contains(tree, "dockerfile") || strings.Contains(tree, "docker-compose"),
		Go:      topicSet["go"] || topicSet["golang"] || strings.Contains(tree, "go.mod"),
		Rust:    topicSet["rust"] || strings.Contains(tree, "cargo.toml"),
		Java:    topicSet["java"] || strings.Contains(tree, "pom.xml") || strings.Contains(tree, "build.gradle"),
		Compose: strings.Contains(tree, "docker-compose"),
		Maven:   strings.Contains(tree, "pom.xml"),
	}
}

// Synthesize renders the tutorial block. The environment, cloning,
// configuration and FAQ sections are unconditional; each detected profile
// contributes its own locally numbered subsection. Zero detections still
// produce the boilerplate.
func Synthesize(d Detection, repoURL, repoName string) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("### 环境准备\n")
	add("在开始之前，请确保您的系统已安装以下工具：\n")

	if d.Python {
		add("- Python 3.8+ ([下载地址](https://www.python.org/downloads/))")
		add("- pip (Python 包管理器)")
	}
	if d.Node {
		add("- Node.js 16+ ([下载地址](https://nodejs.org/))")
		add("- npm 或 yarn 包管理器")
	}
	if d.Docker {
		add("- Docker ([下载地址](https://www.docker.com/get-started))")
		add("- Docker Compose (可选)")
	}
	if d.Go {
		add("- Go 1.19+ ([下载地址](https://go.dev/dl/))")
	}
	if d.Rust {
		add("- Rust ([安装指南](https://www.rust-lang.org/tools/install))")
	}
	if d.Java {
		add("- JDK 11+ ([下载地址](https://adoptium.net/))")
		add("- Maven 或 Gradle")
	}
	add("- Git\n")

	add("### 快速开始\n")
	add("#### 1. 克隆仓库\n")
	add(fmt.Sprintf("```bash\ngit clone %s\ncd %s\n```\n", repoURL, repoName))

	if d.Python {
		add("#### 2. 创建虚拟环境（推荐）\n")
		add("```bash\npython -m venv venv\n# Windows\nvenv\\Scripts\\activate\n# Linux/Mac\nsource venv/bin/activate\n```\n")
		add("#### 3. 安装依赖\n")
		add("```bash\npip install -r requirements.txt\n```\n")
		add("#### 4. 运行项目\n")
		add("```bash\n# 根据项目类型选择运行方式\npython main.py  # 或 python app.py\n```\n")
	}

	if d.Node {
		add("#### 2. 安装依赖\n")
		add("```bash\nnpm install\n# 或使用 yarn\nyarn install\n```\n")
		add("#### 3. 运行项目\n")
		add("```bash\nnpm start\n# 或开发模式\nnpm run dev\n```\n")
	}

	if d.Docker {
		add("#### Docker 部署方式\n")
		add(fmt.Sprintf("```bash\n# 构建镜像\ndocker build -t %s .\n\n# 运行容器\ndocker run -p 8080:8080 %s\n```\n", repoName, repoName))
		if d.Compose {
			add("#### 使用 Docker Compose\n")
			add("```bash\ndocker-compose up -d\n```\n")
		}
	}

	if d.Go {
		add("#### 2. 下载依赖\n")
		add("```bash\ngo mod download\n```\n")
		add("#### 3. 编译运行\n")
		add("```bash\ngo build -o app\n./app\n```\n")
	}

	if d.Rust {
		add("#### 2. 编译运行\n")
		add(fmt.Sprintf("```bash\ncargo build --release\n./target/release/%s\n```\n", repoName))
	}

	if d.Java {
		add("#### 2. 编译项目\n")
		if d.Maven {
			add("```bash\nmvn clean install\nmvn spring-boot:run  # 如果是 Spring Boot 项目\n```\n")
		} else {
			add("```bash\ngradle build\ngradle bootRun  # 如果是 Spring Boot 项目\n```\n")
		}
	}

	add("### 配置说明\n")
	add("1. 检查项目中的 `.env.example` 或 `config.example` 文件\n")
	add("2. 复制示例配置并修改为您的实际配置\n")
	add("3. 确保所有必需的环境变量已正确设置\n")

	add("### 常见问题\n")
	add("- **依赖安装失败**：检查网络连接，尝试使用镜像源\n")
	add("- **端口被占用**：修改配置文件中的端口号\n")
	add("- **权限问题**：确保有足够的文件读写权限\n")

	return strings.Join(lines, "\n")
}
