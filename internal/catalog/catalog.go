package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/aionboard/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml data/activities.yaml
var embedded embed.FS

const (
	embeddedQuestions  = "data/questions.yaml"
	embeddedActivities = "data/activities.yaml"
)

// Catalog is the static survey graph plus the activity catalog. It is
// immutable after Load returns.
type Catalog struct {
	Questions  []domain.Question
	Activities []domain.Activity

	byID map[string]int
}

// Default loads the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return LoadFiles("", "")
}

// LoadFiles loads the question graph and activity catalog from the given
// paths. An empty path selects the embedded default for that half.
func LoadFiles(questionsPath, activitiesPath string) (*Catalog, error) {
	qData, err := readSource(questionsPath, embeddedQuestions)
	if err != nil {
		return nil, fmt.Errorf("reading questions: %w", err)
	}
	aData, err := readSource(activitiesPath, embeddedActivities)
	if err != nil {
		return nil, fmt.Errorf("reading activities: %w", err)
	}
	return Parse(qData, aData)
}

func readSource(path, fallback string) ([]byte, error) {
	if path == "" {
		return embedded.ReadFile(fallback)
	}
	return os.ReadFile(path)
}

// Parse decodes YAML question and activity documents and validates the result.
func Parse(questionsYAML, activitiesYAML []byte) (*Catalog, error) {
	var questions []domain.Question
	if err := yaml.Unmarshal(questionsYAML, &questions); err != nil {
		return nil, fmt.Errorf("parsing questions: %w", err)
	}
	var activities []domain.Activity
	if err := yaml.Unmarshal(activitiesYAML, &activities); err != nil {
		return nil, fmt.Errorf("parsing activities: %w", err)
	}
	return New(questions, activities)
}

// New builds a validated Catalog from in-memory definitions.
func New(questions []domain.Question, activities []domain.Activity) (*Catalog, error) {
	c := &Catalog{Questions: questions, Activities: activities}
	if errs := Validate(c); len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	c.byID = make(map[string]int, len(questions))
	for i, q := range questions {
		c.byID[q.ID] = i
	}
	return c, nil
}

// Question returns the question with the given ID.
func (c *Catalog) Question(id string) (*domain.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Questions[i], true
}

// Intro returns the survey's entry question.
func (c *Catalog) Intro() *domain.Question {
	for i := range c.Questions {
		if c.Questions[i].Type == domain.QuestionIntro {
			return &c.Questions[i]
		}
	}
	return nil
}

// OptionIDs returns the option IDs of a question in catalog order, or nil
// when the question does not exist.
func (c *Catalog) OptionIDs(questionID string) []string {
	q, ok := c.Question(questionID)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

// OptionLabel returns the human label for an option, falling back to the ID.
func (c *Catalog) OptionLabel(questionID, optionID string) string {
	if q, ok := c.Question(questionID); ok {
		if o := q.Option(optionID); o != nil && o.Label != "" {
			return o.Label
		}
	}
	return optionID
}

// Activity returns the catalog activity with the given ID.
func (c *Catalog) Activity(id string) (domain.Activity, bool) {
	for _, a := range c.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Activity{}, false
}
