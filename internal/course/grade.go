package course

import (
	"errors"
	"fmt"
	"strings"
)

// MaxStrength is the highest score PasswordStrength can return.
const MaxStrength = 4

// specialChars are the symbols that count towards password strength.
const specialChars = "!@#$%^&*"

// Classification labels, in option order.
const (
	LabelSafe       = "Seguro"
	LabelSuspicious = "Sospechoso"
)

// ErrInvalidAnswer is returned when an answer does not fit the exercise.
var ErrInvalidAnswer = errors.New("invalid answer")

// Answer is the learner's response to an exercise. Index is used by choice
// and classify exercises; Text by strength exercises.
type Answer struct {
	Index int
	Text  string
}

// Verdict is the graded outcome of an answer.
type Verdict struct {
	Correct  bool
	Feedback string
	Label    string // label of the chosen option, if any
	Strength int    // strength exercises only
}

// Options returns the selectable answers of a choice or classify exercise.
func Options(ex Exercise) []string {
	switch ex.Kind {
	case ExerciseChoice:
		if ex.Choice == nil {
			return nil
		}
		out := make([]string, len(ex.Choice.Options))
		for i, o := range ex.Choice.Options {
			out[i] = o.Text
		}
		return out
	case ExerciseClassify:
		return []string{LabelSafe, LabelSuspicious}
	}
	return nil
}

// Grade evaluates ans against ex.
func Grade(ex Exercise, ans Answer) (Verdict, error) {
	switch ex.Kind {
	case ExerciseChoice:
		return gradeChoice(ex, ans)
	case ExerciseClassify:
		return gradeClassify(ex, ans)
	case ExerciseStrength:
		return gradeStrength(ex, ans)
	}
	return Verdict{}, fmt.Errorf("exercise %q: unknown kind %q: %w", ex.Key, ex.Kind, ErrInvalidAnswer)
}

func gradeChoice(ex Exercise, ans Answer) (Verdict, error) {
	if ex.Choice == nil || ans.Index < 0 || ans.Index >= len(ex.Choice.Options) {
		return Verdict{}, fmt.Errorf("exercise %q: option %d: %w", ex.Key, ans.Index, ErrInvalidAnswer)
	}
	opt := ex.Choice.Options[ans.Index]
	v := Verdict{Correct: opt.Correct, Label: opt.Label}
	if opt.Correct {
		v.Feedback = ex.Choice.CorrectFeedback
	} else {
		v.Feedback = ex.Choice.IncorrectFeedback
	}
	return v, nil
}

func gradeClassify(ex Exercise, ans Answer) (Verdict, error) {
	if ex.Email == nil || (ans.Index != 0 && ans.Index != 1) {
		return Verdict{}, fmt.Errorf("exercise %q: option %d: %w", ex.Key, ans.Index, ErrInvalidAnswer)
	}
	saidPhishing := ans.Index == 1
	v := Verdict{
		Correct: saidPhishing == ex.Email.Phishing,
		Label:   Options(ex)[ans.Index],
	}

	elements := strings.Join(ex.Email.SuspiciousElements, ", ")
	switch {
	case v.Correct && ex.Email.Phishing:
		v.Feedback = "¡Correcto! Elementos sospechosos: " + elements
	case v.Correct:
		v.Feedback = "¡Correcto! Este es un correo legítimo."
	case ex.Email.Phishing:
		v.Feedback = "Incorrecto. Este era un correo fraudulento. Elementos sospechosos: " + elements
	default:
		v.Feedback = "Incorrecto. Este era un correo legítimo."
	}
	return v, nil
}

func gradeStrength(ex Exercise, ans Answer) (Verdict, error) {
	if ex.Strength == nil {
		return Verdict{}, fmt.Errorf("exercise %q: missing rule: %w", ex.Key, ErrInvalidAnswer)
	}
	rule := ex.Strength
	s := PasswordStrength(ans.Text, rule.MinLength)
	v := Verdict{Strength: s, Correct: s >= rule.Threshold}
	switch {
	case s == MaxStrength:
		v.Feedback = rule.Excellent
	case v.Correct:
		v.Feedback = rule.Good
	default:
		v.Feedback = rule.Weak
	}
	return v, nil
}

// PasswordStrength scores pw from 0 to MaxStrength, one point each for
// length of at least minLength, an ASCII uppercase letter, an ASCII digit and
// a special character.
func PasswordStrength(pw string, minLength int) int {
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	score := 0
	if len([]rune(pw)) >= minLength {
		score++
	}
	for _, ok := range []bool{upper, digit, special} {
		if ok {
			score++
		}
	}
	return score
}
