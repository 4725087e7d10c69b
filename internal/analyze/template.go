package analyze

import "fmt"

// Headings the narrative prompt requests and the assembler consults. The
// prompt and the heading→field table are co-designed: changing one side
// without the other silently breaks assembly, so both live in this package.
const (
	HeadingOverview   = "项目概述"
	HeadingFeatures   = "核心功能"
	HeadingTechnology = "技术特点"
	HeadingStrengths  = "优点"
	HeadingImprove    = "不足与改进建议"
	HeadingUseCases   = "适用场景"
)

// Template selects between the long-form and short-form analysis variants.
// The two share one assembler; the template decides which sections the model
// is asked for and which heading keys are consulted.
type Template int

const (
	// TemplateLong requests the full six-section report.
	TemplateLong Template = iota

	// TemplateShort requests only overview, features and technology;
	// review-type fields take their fallbacks.
	TemplateShort
)

// SectionSpec pairs a requested heading with the per-section instruction
// shown to the model.
type SectionSpec struct {
	Heading string
	Hint    string
}

var longSections = []SectionSpec{
	{HeadingOverview, "（200-300字的项目介绍）"},
	{HeadingFeatures, "（列出 3-5 个主要功能）"},
	{HeadingTechnology, "（分析技术栈和架构特点）"},
	{HeadingStrengths, "（列出 3-5 个优点）"},
	{HeadingImprove, "（列出 2-3 个可改进的地方）"},
	{HeadingUseCases, "（说明项目适合的使用场景）"},
}

var shortSections = []SectionSpec{
	{HeadingOverview, "（100-150字的项目介绍）"},
	{HeadingFeatures, "（列出 3 个主要功能）"},
	{HeadingTechnology, "（简要分析技术栈）"},
}

// Sections returns the section specs the template requests, in prompt order.
func (t Template) Sections() []SectionSpec {
	if t == TemplateShort {
		return shortSections
	}
	return longSections
}

func (t Template) String() string {
	if t == TemplateShort {
		return "short"
	}
	return "long"
}

// ParseTemplate maps a CLI flag value to a Template.
func ParseTemplate(name string) (Template, error) {
	switch name {
	case "long", "":
		return TemplateLong, nil
	case "short":
		return TemplateShort, nil
	default:
		return TemplateLong, fmt.Errorf("unknown template %q (want long or short)", name)
	}
}
