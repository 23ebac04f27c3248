package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// readAnswersFile loads survey answers from a YAML (or JSON) mapping of
// question ID to option ID or list of option IDs. Key order is preserved.
func readAnswersFile(path string) (*domain.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	answers, err := parseAnswers(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return answers, nil
}

func parseAnswers(data []byte) (*domain.AnswerSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	answers := domain.NewAnswerSet()
	if len(doc.Content) == 0 {
		return answers, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: answers must be a mapping of question to option", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			answers.Set(key.Value, domain.SingleAnswer(val.Value))
		case yaml.SequenceNode:
			ids := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: %s: options must be strings", item.Line, key.Value)
				}
				ids = append(ids, item.Value)
			}
			answers.Set(key.Value, domain.MultiAnswer(ids))
		default:
			return nil, fmt.Errorf("line %d: %s: expected an option or a list of options", val.Line, key.Value)
		}
	}
	return answers, nil
}
