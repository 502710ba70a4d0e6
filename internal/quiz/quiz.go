// Package quiz holds the philosophy question set and converts answers into
// per-zone scores.
package quiz

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/pm-philosophy/internal/model"
)

//go:embed questions.yaml
var defaultQuestions []byte

// DefaultMinAnswers is how many questions must be answered before a
// profile is considered meaningful.
const DefaultMinAnswers = 7

// Answers maps question IDs to the chosen answer ID.
type Answers map[string]string

// Answer is one selectable option.
type Answer struct {
	ID    string             `yaml:"id" json:"id"`
	Icon  string             `yaml:"icon" json:"icon"`
	Text  string             `yaml:"text" json:"text"`
	Zones map[string]float64 `yaml:"zones" json:"zones"`
}

// Question is one quiz question.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Answers []Answer `yaml:"answers" json:"answers"`
}

// Quiz is an immutable question set.
type Quiz struct {
	questions []Question
	byID      map[string]map[string]model.ZoneVector
}

// Default returns the embedded question set.
func Default() *Quiz {
	q, err := Parse(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("embedded questions: %v", err))
	}
	return q
}

// Parse builds a Quiz from YAML.
func Parse(data []byte) (*Quiz, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("no questions defined")
	}

	q := &Quiz{
		questions: doc.Questions,
		byID:      make(map[string]map[string]model.ZoneVector, len(doc.Questions)),
	}
	for _, question := range doc.Questions {
		if question.ID == "" {
			return nil, fmt.Errorf("question without id")
		}
		if _, dup := q.byID[question.ID]; dup {
			return nil, fmt.Errorf("duplicate question %q", question.ID)
		}
		answers := make(map[string]model.ZoneVector, len(question.Answers))
		for _, a := range question.Answers {
			if _, dup := answers[a.ID]; dup {
				return nil, fmt.Errorf("question %s: duplicate answer %q", question.ID, a.ID)
			}
			points := make(model.ZoneVector, len(a.Zones))
			for name, v := range a.Zones {
				zone, err := model.ParseZoneID(name)
				if err != nil {
					return nil, fmt.Errorf("question %s answer %s: %w", question.ID, a.ID, err)
				}
				points[zone] = v
			}
			answers[a.ID] = points
		}
		q.byID[question.ID] = answers
	}
	return q, nil
}

// Questions returns the question set in display order.
func (q *Quiz) Questions() []Question {
	out := make([]Question, len(q.questions))
	copy(out, q.questions)
	return out
}

// Len is the number of questions.
func (q *Quiz) Len() int {
	return len(q.questions)
}

// Answered counts answers that refer to a known question and option.
func (q *Quiz) Answered(answers Answers) int {
	n := 0
	for qid, aid := range answers {
		if _, ok := q.byID[qid][aid]; ok {
			n++
		}
	}
	return n
}

// Validate reports the first answer that does not match the question set.
func (q *Quiz) Validate(answers Answers) error {
	for _, question := range q.questions {
		aid, ok := answers[question.ID]
		if !ok {
			continue
		}
		if _, ok := q.byID[question.ID][aid]; !ok {
			return fmt.Errorf("question %s: unknown answer %q", question.ID, aid)
		}
	}
	for qid := range answers {
		if _, ok := q.byID[qid]; !ok {
			return fmt.Errorf("unknown question %q", qid)
		}
	}
	return nil
}

// Score sums zone points over the chosen answers. Unknown questions and
// answers contribute nothing. The result always holds all eight zones.
func (q *Quiz) Score(answers Answers) model.ZoneScores {
	scores := make(model.ZoneScores, model.NumZones)
	for _, zone := range model.AllZones() {
		scores[zone] = 0
	}
	for _, question := range q.questions {
		points, ok := q.byID[question.ID][answers[question.ID]]
		if !ok {
			continue
		}
		for zone, v := range points {
			scores[zone] += v
		}
	}
	return scores
}
