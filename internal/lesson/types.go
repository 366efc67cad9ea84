package lesson

// identifies the shape of a worksheet item
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeShortAnswer    QuestionType = "short_answer"
)

// number of options every multiple choice item carries
const MultipleChoiceOptions = 4

// the teacher-facing half of an artifact
type LessonPlan struct {
	Objectives []string `json:"objectives"`
	Materials  []string `json:"materials"`
	Activities []string `json:"activities"`
	Assessment string   `json:"assessment"`
}

// the student-facing half of an artifact
type Worksheet struct {
	Instructions string         `json:"instructions"`
	Items        []QuestionItem `json:"items"`
}

// a tagged worksheet question. Options is only populated for multiple choice.
type QuestionItem struct {
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

// the lesson plan plus worksheet returned to callers
type Artifact struct {
	LessonPlan LessonPlan `json:"lesson_plan"`
	Worksheet  Worksheet  `json:"worksheet"`
}

func MultipleChoice(question string, options []string, answer, explanation string) QuestionItem {
	return QuestionItem{
		Type:        TypeMultipleChoice,
		Question:    question,
		Options:     append([]string(nil), options...),
		Answer:      answer,
		Explanation: explanation,
	}
}

func FillBlank(question, answer, explanation string) QuestionItem {
	return QuestionItem{
		Type:        TypeFillBlank,
		Question:    question,
		Answer:      answer,
		Explanation: explanation,
	}
}

func ShortAnswer(question, answer, explanation string) QuestionItem {
	return QuestionItem{
		Type:        TypeShortAnswer,
		Question:    question,
		Answer:      answer,
		Explanation: explanation,
	}
}

// returns a deep copy so callers can hold on to an artifact without aliasing
func (a Artifact) Clone() Artifact {
	items := make([]QuestionItem, len(a.Worksheet.Items))
	for i, item := range a.Worksheet.Items {
		items[i] = item
		items[i].Options = append([]string(nil), item.Options...)
	}

	return Artifact{
		LessonPlan: LessonPlan{
			Objectives: append([]string(nil), a.LessonPlan.Objectives...),
			Materials:  append([]string(nil), a.LessonPlan.Materials...),
			Activities: append([]string(nil), a.LessonPlan.Activities...),
			Assessment: a.LessonPlan.Assessment,
		},
		Worksheet: Worksheet{
			Instructions: a.Worksheet.Instructions,
			Items:        items,
		},
	}
}

// counts worksheet items per question type
func (w Worksheet) CountByType() map[QuestionType]int {
	counts := make(map[QuestionType]int, 3)
	for _, item := range w.Items {
		counts[item.Type]++
	}

	return counts
}

// reports whether two artifacts have the same worksheet shape:
// identical item count and the same question type at every position.
func SameShape(a, b Artifact) bool {
	if len(a.Worksheet.Items) != len(b.Worksheet.Items) {
		return false
	}

	for i := range a.Worksheet.Items {
		if a.Worksheet.Items[i].Type != b.Worksheet.Items[i].Type {
			return false
		}

		if len(a.Worksheet.Items[i].Options) != len(b.Worksheet.Items[i].Options) {
			return false
		}
	}

	return true
}
