package entitlement

import (
	"sort"
	"time"
)

// Tier is the capability set a record grants at a given instant.
type Tier string

const (
	TierNone     Tier = "none"
	TierFreemium Tier = "freemium"
	TierPremium  Tier = "premium"
)

type Tool string

const (
	ToolDocs           Tool = "docs"
	ToolWatermarkAdder Tool = "watermark-adder"
	ToolExam           Tool = "exam"
	ToolNotes          Tool = "notes"
	ToolHandwriting    Tool = "handwriting"
	ToolIllustrations  Tool = "illustrations"
	ToolSolver         Tool = "solver"
	ToolBlueprint      Tool = "blueprint"
	ToolEditor         Tool = "editor"
	ToolResume         Tool = "resume"
	ToolAnalyzer       Tool = "analyzer"
	ToolStorage        Tool = "storage"
)

// toolTier is the minimum tier each tool requires.
var toolTier = map[Tool]Tier{
	ToolStorage:        TierNone,
	ToolDocs:           TierFreemium,
	ToolWatermarkAdder: TierFreemium,
	ToolExam:           TierFreemium,
	ToolNotes:          TierFreemium,
	ToolResume:         TierFreemium,
	ToolHandwriting:    TierPremium,
	ToolIllustrations:  TierPremium,
	ToolSolver:         TierPremium,
	ToolBlueprint:      TierPremium,
	ToolEditor:         TierPremium,
	ToolAnalyzer:       TierPremium,
}

// ParseTool reports whether s names a gated tool.
func ParseTool(s string) (Tool, bool) {
	tool := Tool(s)
	_, ok := toolTier[tool]
	return tool, ok
}

func (t Tier) rank() int {
	switch t {
	case TierPremium:
		return 2
	case TierFreemium:
		return 1
	}
	return 0
}

// Allows reports whether the tier unlocks tool. Unknown tools are denied.
func (t Tier) Allows(tool Tool) bool {
	required, ok := toolTier[tool]
	if !ok {
		return false
	}
	return t.rank() >= required.rank()
}

// Tools lists every tool the tier unlocks, sorted by name.
func (t Tier) Tools() []Tool {
	var out []Tool
	for tool := range toolTier {
		if t.Allows(tool) {
			out = append(out, tool)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Evaluate computes the tier of cur at now without mutating it. The two
// clocks stay separate: paid, trial and cancelled records answer to their
// own ExpiryDate, freemium answers only to the shared code expiry.
func Evaluate(cur Record, now time.Time, codeExpiry *time.Time) Tier {
	switch cur.Status {
	case StatusActive, StatusTrial:
		if cur.ExpiryDate != nil && !cur.ExpiryDate.After(now) {
			return TierNone
		}
		return TierPremium
	case StatusCancelled:
		if cur.ExpiryDate == nil || now.After(*cur.ExpiryDate) {
			return TierNone
		}
		return TierPremium
	case StatusFreemium:
		if CodeExpired(now, codeExpiry) {
			return TierNone
		}
		return TierFreemium
	}
	return TierNone
}
