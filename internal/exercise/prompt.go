package exercise

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You are a study assistant creating practice questions for a learner.

Rules:
- Generate exactly the requested number of questions about the given topic.
- Questions must be factually accurate, clear, and self-contained.
- Each question must have exactly one defensible correct answer.
- For multiple_choice questions, provide exactly 4 options where exactly one is correct. Distractors should be plausible, not random.
- For fill_blank questions, the answer must be a single short word or phrase the learner can type exactly.
- For open_ended questions, the answer is a model answer a knowledgeable person would give in one or two sentences.
- Do not number the questions or reference one question from another.`

const pairSystemPrompt = `You are a study assistant creating a term-matching game for a learner.

Rules:
- Generate exactly the requested number of term/definition pairs about the given topic.
- Terms must be distinct from each other; definitions must be distinct from each other.
- Each definition must unambiguously describe its own term and no other term in the set.
- Keep terms short (one to four words) and definitions to a single sentence.`

// buildQuestionMessage constructs the user message for quiz and
// mixed-quiz generation.
func buildQuestionMessage(topic string, count int, mode Mode) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	switch mode {
	case ModeQuiz:
		b.WriteString("Question kinds: open_ended only. Every question must have kind \"open_ended\".\n")
	case ModeMixed:
		b.WriteString("Question kinds: a mix of multiple_choice, fill_blank and open_ended. Include at least one of each kind when the count allows.\n")
	}

	return b.String()
}

// buildPairMessage constructs the user message for matching-game
// generation.
func buildPairMessage(topic string, count int) string {
	return fmt.Sprintf("Topic: %s\nNumber of pairs: %d\n", topic, count)
}
