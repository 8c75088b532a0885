// Package prompt assembles the classification request sent to the
// model gateway. The user message follows a fixed Chinese template
// embedding the candidate vocabulary, the document title and the
// excerpt; the whole prompt is bounded to a rune budget by truncating
// the excerpt before concatenation, never after.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taxa-labs/taxa-cli/internal/chunk"
)

// DefaultSystemPrompt steers reasoning models away from <think> blocks
// and towards the single-line JSON answer the parser expects.
const DefaultSystemPrompt = `你是文献领域分类器。本任务只需从给定内容判断一个学科名称，无需推理过程。
禁止使用 <think> 或任何思考标签，不要输出解释，直接只输出一行 JSON：{"field": "学科名称"}。`

const userTemplate = `判断下面文献的最接近最小领域（学科）。
请优先从以下领域中选择最贴近的一项：%s
若以上均不贴近，再自行给出一个学科名称。只输出一个中文名。
直接输出一行 JSON，不要 <think>、不要解释：
{"field": "学科名称"}

【文件名】%s

【标题、作者、机构、摘要】
%s`

const (
	vocabularySeparator = "、"
	titleFallback       = "Unknown"
	excerptFallback     = "No Content Detected"
)

// Prompt is the message pair handed to the gateway.
type Prompt struct {
	System string
	User   string
}

// Assemble renders the classification prompt. The excerpt budget is
// maxPromptChars minus the system prompt and the fixed prefix with the
// title already substituted, floored at zero, so the assembled prompt
// never exceeds the budget however long the excerpt is. Budgets count
// runes.
func Assemble(title, excerpt string, vocabulary []string, systemPrompt string, maxPromptChars int) Prompt {
	domains := strings.Join(vocabulary, vocabularySeparator)

	t := strings.TrimSpace(title)
	if t == "" {
		t = titleFallback
	}
	body := strings.TrimSpace(excerpt)
	if body == "" {
		body = excerptFallback
	}

	prefix := fmt.Sprintf(userTemplate, domains, t, "")
	budget := maxPromptChars - utf8.RuneCountInString(systemPrompt) - utf8.RuneCountInString(prefix)
	if budget < 0 {
		budget = 0
	}
	body = chunk.Truncate(body, budget)

	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf(userTemplate, domains, t, body),
	}
}
