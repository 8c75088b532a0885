// Package mock provides a deterministic keyword-rule gateway for
// offline runs and demos. No model is involved; the prompt is matched
// against a fixed keyword table and the reply is the agreed JSON
// format, so the full parse path is exercised.
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.LLMGateway = (*Gateway)(nil)

// ModelName reported by the mock gateway.
const modelName = "mock"

// rule maps prompt keywords to a domain label. ASCII keywords are
// matched case-insensitively, Chinese keywords literally.
type rule struct {
	label    string
	keywords []string
}

// rules is ordered most specific first. A bioinformatics paper also
// mentions genes, so the narrow rule has to run before the broad one.
var rules = []rule{
	{label: "生物信息学", keywords: []string{"bioinformatic", "genomic", "sequencing", "基因组", "测序", "生物信息"}},
	{label: "计算机科学", keywords: []string{"computer", "algorithm", "machine learning", "计算机", "机器学习", "算法"}},
	{label: "材料科学", keywords: []string{"material", "材料"}},
	{label: "农学", keywords: []string{"agricultur", "crop", "农业", "作物"}},
	{label: "经济学", keywords: []string{"economic", "经济"}},
	{label: "化学", keywords: []string{"chemistry", "chemical", "化学"}},
	{label: "物理学", keywords: []string{"physics", "quantum", "物理"}},
	{label: "医学", keywords: []string{"clinical", "patient", "diagnosis", "临床", "医学", "患者"}},
	{label: "生物学", keywords: []string{"gene", "cell", "protein", "基因", "细胞", "蛋白", "生物"}},
}

// Gateway classifies by keyword lookup instead of calling a model.
type Gateway struct{}

// NewGateway creates a new mock gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// Complete matches the prompt against the keyword table and returns
// the first matching label wrapped in the agreed reply format. Prompts
// matching no rule classify as uncategorised.
func (g *Gateway) Complete(ctx context.Context, userPrompt, _ string, _ driven.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lowered := strings.ToLower(userPrompt)
	label := domain.UncategorisedCN
	for _, r := range rules {
		if matches(lowered, r.keywords) {
			label = r.label
			break
		}
	}
	return fmt.Sprintf(`{"field": "%s"}`, label), nil
}

// matches reports whether any keyword occurs in the lowered prompt.
func matches(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// ModelName returns the name of the model being used.
func (g *Gateway) ModelName() string {
	return modelName
}

// Ping always succeeds; there is nothing to reach.
func (g *Gateway) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (g *Gateway) Close() error {
	return nil
}
