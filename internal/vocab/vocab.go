// Package vocab carries the suggested domain vocabulary offered to the
// model as preferred candidates before it may coin a label of its own.
package vocab

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// defaults is the built-in vocabulary, biased towards the life-science
// corpora this tool grew up on. Order is preserved in the prompt.
var defaults = []string{
	"细胞生物学", "分子生物学", "免疫学", "肿瘤学", "癌症生物学", "干细胞生物学", "发育生物学",
	"药理学", "毒理学", "再生医学", "组织工程", "疫苗学", "病毒学", "生物制药", "生物技术",
	"体外受精", "生殖生物学", "培养肉", "合成生物学", "微生物学", "植物生物学", "神经科学",
	"内分泌学", "代谢研究", "流行病学", "公共卫生",
}

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "maxItems": 100,
  "uniqueItems": true,
  "items": {
    "type": "string",
    "minLength": 1,
    "maxLength": 50
  }
}`

var schema = jsonschema.MustCompileString("vocabulary.schema.json", schemaJSON)

// Default returns a copy of the built-in vocabulary.
func Default() []string {
	return append([]string(nil), defaults...)
}

// Load reads a replacement vocabulary from a JSON array of labels and
// validates it against the vocabulary schema. The file's label order
// is preserved.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: parse vocabulary: %v", domain.ErrVocabularyInvalid, err)
	}
	if err := schema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVocabularyInvalid, err)
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVocabularyInvalid, err)
	}
	return labels, nil
}
