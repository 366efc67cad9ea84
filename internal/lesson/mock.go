package lesson

import (
	"fmt"
	"strings"
)

// topics containing any of these (case-insensitive) get the math worksheet variant
var mathKeywords = []string{
	"math",
	"addition",
	"subtraction",
	"fraction",
	"algebra",
	"geometry",
	"division",
	"multiplication",
	"formula",
}

// reports whether a topic reads as math-flavored
func IsMathTopic(topic string) bool {
	lower := strings.ToLower(topic)

	for _, keyword := range mathKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// builds the deterministic fallback artifact for a grade and topic.
// the worksheet always carries 3 multiple choice, 3 fill blank and 3 short answer items.
func BuildMock(grade, topic string) Artifact {
	math := IsMathTopic(topic)

	items := make([]QuestionItem, 0, 9)

	if math {
		items = append(items, mathMultipleChoice(grade, topic)...)
		items = append(items, mathFillBlank(grade, topic)...)
	} else {
		items = append(items, generalMultipleChoice(grade, topic)...)
		items = append(items, generalFillBlank(grade, topic)...)
	}

	items = append(items, shortAnswers(grade, topic)...)

	return Artifact{
		LessonPlan: mockLessonPlan(grade, topic, math),
		Worksheet: Worksheet{
			Instructions: fmt.Sprintf("Read each question carefully and answer in complete sentences where asked. This worksheet reviews %s for %s students.", topic, grade),
			Items:        items,
		},
	}
}

func mockLessonPlan(grade, topic string, math bool) LessonPlan {
	guided := fmt.Sprintf("[15 min] Guided Practice: the teacher models two %s examples while %s students follow along and ask questions.", topic, grade)
	if math {
		guided = fmt.Sprintf("[15 min] Guided Practice: the teacher solves two %s problems step by step, naming each step aloud for %s students.", topic, grade)
	}

	return LessonPlan{
		Objectives: []string{
			fmt.Sprintf("Students will explain the key ideas of %s using vocabulary suited to %s.", topic, grade),
			fmt.Sprintf("Students will apply what they learned about %s to new examples.", topic),
			fmt.Sprintf("Students will connect %s to situations from everyday life.", topic),
		},
		Materials: []string{
			"Whiteboard and markers",
			fmt.Sprintf("Printed %s worksheet (one per student)", topic),
			fmt.Sprintf("Visual aids or slides introducing %s", topic),
			"Exit ticket slips",
		},
		Activities: []string{
			fmt.Sprintf("[10 min] Introduction: a short class discussion about what %s students already know about %s.", grade, topic),
			guided,
			fmt.Sprintf("[15 min] Independent Practice: students complete the %s worksheet on their own.", topic),
			fmt.Sprintf("[5 min] Closing: review the answers together and summarize the main ideas of %s.", topic),
		},
		Assessment: fmt.Sprintf("Collect the worksheets and exit tickets to check that %s students can explain and apply %s accurately.", grade, topic),
	}
}

func generalMultipleChoice(grade, topic string) []QuestionItem {
	return []QuestionItem{
		MultipleChoice(
			fmt.Sprintf("Which statement best describes %s?", topic),
			[]string{
				fmt.Sprintf("It is the main idea we studied in our %s lesson", topic),
				"It is a type of weather",
				"It is a rule from a sports game",
				"It is the name of a musical instrument",
			},
			fmt.Sprintf("It is the main idea we studied in our %s lesson", topic),
			fmt.Sprintf("Today's lesson focused on %s.", topic),
		),
		MultipleChoice(
			fmt.Sprintf("Why is learning about %s useful for %s students?", topic, grade),
			[]string{
				"It helps us understand the world around us",
				"It is never used outside school",
				"It only matters on holidays",
				"It replaces reading and writing",
			},
			"It helps us understand the world around us",
			fmt.Sprintf("Knowledge of %s applies beyond the classroom.", topic),
		),
		MultipleChoice(
			fmt.Sprintf("Which activity would help you practice %s?", topic),
			[]string{
				fmt.Sprintf("Explaining %s to a classmate", topic),
				"Skipping the worksheet",
				"Guessing without reading",
				"Copying answers from a friend",
			},
			fmt.Sprintf("Explaining %s to a classmate", topic),
			"Teaching someone else is one of the best ways to learn.",
		),
	}
}

func mathMultipleChoice(_, topic string) []QuestionItem {
	return []QuestionItem{
		MultipleChoice(
			fmt.Sprintf("In our %s lesson, what is 12 + 15?", topic),
			[]string{"27", "25", "30", "17"},
			"27",
			"Add the ones (2 + 5 = 7) and then the tens (10 + 10 = 20).",
		),
		MultipleChoice(
			fmt.Sprintf("Using your %s skills, what is one half of 18?", topic),
			[]string{"9", "6", "12", "8"},
			"9",
			"Splitting 18 into two equal groups gives 9 in each group.",
		),
		MultipleChoice(
			fmt.Sprintf("A %s problem asks for 6 × 7. What is the answer?", topic),
			[]string{"42", "36", "48", "13"},
			"42",
			"Six groups of seven make 42.",
		),
	}
}

func generalFillBlank(grade, topic string) []QuestionItem {
	return []QuestionItem{
		FillBlank("The main topic of today's lesson is ____.", topic, ""),
		FillBlank(fmt.Sprintf("Today's %s lesson was written for ____ students.", topic), grade, ""),
		FillBlank(fmt.Sprintf("Studying %s helps us ____ the world around us.", topic), "understand", ""),
	}
}

func mathFillBlank(_, topic string) []QuestionItem {
	return []QuestionItem{
		FillBlank(fmt.Sprintf("In %s, 24 ÷ 6 = ____.", topic), "4", "Six groups of four make 24."),
		FillBlank(fmt.Sprintf("When solving a %s problem, the first step is to ____ the question carefully.", topic), "read", ""),
		FillBlank(fmt.Sprintf("A %s answer should always be checked by ____ your work.", topic), "reviewing", ""),
	}
}

func shortAnswers(grade, topic string) []QuestionItem {
	return []QuestionItem{
		ShortAnswer(
			fmt.Sprintf("In your own words, explain what %s means.", topic),
			fmt.Sprintf("Answers will vary. A strong answer describes the main idea of %s accurately using %s vocabulary.", topic, grade),
			"",
		),
		ShortAnswer(
			fmt.Sprintf("Give one real-life example connected to %s.", topic),
			fmt.Sprintf("Answers will vary. Accept any example that correctly relates to %s.", topic),
			"",
		),
		ShortAnswer(
			fmt.Sprintf("What is one question you still have about %s?", topic),
			fmt.Sprintf("Answers will vary. Look for a thoughtful question that shows engagement with %s.", topic),
			"",
		),
	}
}
