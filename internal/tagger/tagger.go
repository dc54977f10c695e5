// internal/tagger/tagger.go
package tagger

import (
	"strings"

	"vibe-apps-aggregator/internal/normalize"
	"vibe-apps-aggregator/internal/platform"
)

// Detection methods, in decreasing confidence order.
const (
	MethodPlatform = "platform_detection"
	MethodFilename = "filename"
	MethodKeyword  = "keyword"
)

const (
	confidencePlatform = 1.0
	confidenceFilename = 0.9
	confidenceKeyword  = 0.4
)

// Tool is the reference identity of a detectable AI tool.
type Tool struct {
	Name     string
	Category string
	Provider string
}

// Detection is one (tool, confidence, method) tuple produced by the tagger.
type Detection struct {
	Tool       Tool
	Confidence float64
	Method     string
}

// Rule is one entry of the detection policy table: a predicate over the
// canonical record plus the confidence and method it asserts when matched.
type Rule struct {
	Tool       Tool
	Method     string
	Confidence float64
	Match      func(rec *normalize.Record) bool
}

// Tagger evaluates an ordered rule table against canonical records.
type Tagger struct {
	rules []Rule
}

// New builds a tagger over the given rules. Rules are evaluated in order;
// when several match the same tool, the highest-confidence detection wins.
func New(rules []Rule) *Tagger {
	return &Tagger{rules: rules}
}

// Default returns the standard policy: platform-implied tools (1.0), marker
// filename matches (0.9) and description keyword matches (0.4).
func Default() *Tagger {
	var rules []Rule

	platformTools := map[string]Tool{
		platform.V0:      {Name: "v0", Category: "code_generator", Provider: "Vercel"},
		platform.Lovable: {Name: "Lovable", Category: "app_builder", Provider: "Lovable"},
		platform.Bolt:    {Name: "Bolt", Category: "app_builder", Provider: "StackBlitz"},
		platform.Jules:   {Name: "Jules", Category: "coding_agent", Provider: "Google"},
	}
	for plat, tool := range platformTools {
		plat, tool := plat, tool
		rules = append(rules, Rule{
			Tool:       tool,
			Method:     MethodPlatform,
			Confidence: confidencePlatform,
			Match:      func(rec *normalize.Record) bool { return rec.Platform == plat },
		})
	}

	filenameTools := map[string]Tool{
		"CLAUDE.md":    {Name: "Claude", Category: "coding_agent", Provider: "Anthropic"},
		"GEMINI.md":    {Name: "Gemini", Category: "coding_agent", Provider: "Google"},
		"AGENTS.md":    {Name: "AI Agents", Category: "coding_agent", Provider: ""},
		".cursorrules": {Name: "Cursor", Category: "code_editor", Provider: "Anysphere"},
	}
	for filename, tool := range filenameTools {
		filename, tool := filename, tool
		rules = append(rules, Rule{
			Tool:       tool,
			Method:     MethodFilename,
			Confidence: confidenceFilename,
			Match: func(rec *normalize.Record) bool {
				if rec.GitHub == nil {
					return false
				}
				for _, f := range rec.GitHub.Files {
					if strings.EqualFold(f.Name, filename) {
						return true
					}
				}
				return false
			},
		})
	}

	keywordTools := map[string]Tool{
		"claude":  {Name: "Claude", Category: "coding_agent", Provider: "Anthropic"},
		"gemini":  {Name: "Gemini", Category: "coding_agent", Provider: "Google"},
		"copilot": {Name: "Copilot", Category: "coding_agent", Provider: "GitHub"},
		"cursor":  {Name: "Cursor", Category: "code_editor", Provider: "Anysphere"},
		"chatgpt": {Name: "ChatGPT", Category: "chat_assistant", Provider: "OpenAI"},
		"v0.dev":  {Name: "v0", Category: "code_generator", Provider: "Vercel"},
	}
	for keyword, tool := range keywordTools {
		keyword, tool := keyword, tool
		rules = append(rules, Rule{
			Tool:       tool,
			Method:     MethodKeyword,
			Confidence: confidenceKeyword,
			Match: func(rec *normalize.Record) bool {
				return strings.Contains(strings.ToLower(rec.Description), keyword)
			},
		})
	}

	return New(rules)
}

// Detect evaluates the rule table against rec. One detection per tool at
// most; the highest-confidence match for a tool survives.
func (t *Tagger) Detect(rec *normalize.Record) []Detection {
	best := make(map[string]Detection)
	var order []string

	for _, rule := range t.rules {
		if !rule.Match(rec) {
			continue
		}
		current, seen := best[rule.Tool.Name]
		if !seen {
			order = append(order, rule.Tool.Name)
		}
		if !seen || rule.Confidence > current.Confidence {
			best[rule.Tool.Name] = Detection{Tool: rule.Tool, Confidence: rule.Confidence, Method: rule.Method}
		}
	}

	detections := make([]Detection, 0, len(order))
	for _, name := range order {
		detections = append(detections, best[name])
	}
	return detections
}
