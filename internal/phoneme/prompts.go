package phoneme

import "fmt"

// Practice prompt templates spoken to the learner.
const (
	promptIntro     = "Let's practice the word %s."
	promptSound     = "Let's practice the sound %s."
	promptRepeat    = "Your turn: %s"
	promptWholeWord = "Now try saying the whole word: %s"

	// PromptAllCorrect celebrates a correctly pronounced word.
	PromptAllCorrect = "Great job! You pronounced the word correctly!"
)

// IntroPrompt introduces a practice word.
func IntroPrompt(word string) string {
	return fmt.Sprintf(promptIntro, word)
}

// SoundPrompt introduces a single sound to practice.
func SoundPrompt(readable string) string {
	return fmt.Sprintf(promptSound, readable)
}

// RepeatPrompt asks the learner to repeat a sound.
func RepeatPrompt(readable string) string {
	return fmt.Sprintf(promptRepeat, readable)
}

// WholeWordPrompt asks the learner to say the full word.
func WholeWordPrompt(word string) string {
	return fmt.Sprintf(promptWholeWord, word)
}
