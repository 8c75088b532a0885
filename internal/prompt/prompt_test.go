package prompt

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var testVocabulary = []string{"细胞生物学", "免疫学", "病毒学", "神经科学"}

func runes(s string) int { return utf8.RuneCountInString(s) }

func TestAssemble_EmbedsVocabularyTitleAndExcerpt(t *testing.T) {
	p := Assemble("Deep Mutational Scanning", "【标题】\nDeep Mutational Scanning", testVocabulary, DefaultSystemPrompt, 4000)

	assert.Equal(t, DefaultSystemPrompt, p.System)
	assert.Contains(t, p.User, "细胞生物学、免疫学、病毒学、神经科学")
	assert.Contains(t, p.User, "【文件名】Deep Mutational Scanning")
	assert.Contains(t, p.User, "【标题、作者、机构、摘要】\n【标题】\nDeep Mutational Scanning")
}

func TestAssemble_TitleFallback(t *testing.T) {
	p := Assemble("   ", "some excerpt", testVocabulary, DefaultSystemPrompt, 4000)

	assert.Contains(t, p.User, "【文件名】Unknown")
}

func TestAssemble_ExcerptFallback(t *testing.T) {
	p := Assemble("paper.pdf", "", testVocabulary, DefaultSystemPrompt, 4000)

	assert.Contains(t, p.User, "No Content Detected")
}

func TestAssemble_BudgetNeverExceeded(t *testing.T) {
	long := strings.Repeat("实验方法与结果的详细描述。", 1500)

	for _, max := range []int{500, 800, 1200, 4000} {
		p := Assemble("paper.pdf", long, testVocabulary, DefaultSystemPrompt, max)

		total := runes(p.System) + runes(p.User)
		assert.LessOrEqual(t, total, max, "max_prompt_chars=%d", max)
	}
}

func TestAssemble_BudgetHoldsForRandomExcerpts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 30; trial++ {
		excerpt := strings.Repeat("研究内容概述。", 1+rng.Intn(2000))
		max := 500 + rng.Intn(3500)

		p := Assemble("paper.pdf", excerpt, testVocabulary, DefaultSystemPrompt, max)

		total := runes(p.System) + runes(p.User)
		if total > max {
			t.Fatalf("trial %d: prompt %d runes exceeds budget %d", trial, total, max)
		}
	}
}

func TestAssemble_TruncatesExcerptHeadNotTail(t *testing.T) {
	excerpt := "开头句子。" + strings.Repeat("中间内容反复出现。", 400) + "结尾标记句。"

	p := Assemble("paper.pdf", excerpt, testVocabulary, DefaultSystemPrompt, 900)

	assert.Contains(t, p.User, "开头句子。")
	assert.NotContains(t, p.User, "结尾标记句")
}

func TestAssemble_ZeroBudgetLeavesPrefixOnly(t *testing.T) {
	p := Assemble("paper.pdf", "any excerpt", testVocabulary, DefaultSystemPrompt, 10)

	assert.True(t, strings.HasSuffix(p.User, "【标题、作者、机构、摘要】\n"), "excerpt slot stays empty: %q", p.User)
	assert.NotContains(t, p.User, "any excerpt")
}
