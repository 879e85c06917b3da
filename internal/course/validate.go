package course

import (
	"fmt"
	"strings"
)

// validateCatalog performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(c *Catalog) error {
	var errs []string

	// Ids are consecutive from FirstModuleID; the access gate relies on id-1.
	for i, m := range c.Modules {
		if want := FirstModuleID + i; m.ID != want {
			errs = append(errs, fmt.Sprintf("module %d at position %d: want id %d", m.ID, i, want))
		}
	}

	for _, m := range c.Modules {
		keys := make(map[string]bool)
		for si, s := range m.Steps {
			prefix := fmt.Sprintf("module %d step %d (%q)", m.ID, si, s.Title)

			if s.Graded() && len(s.Exercises) == 0 {
				errs = append(errs, fmt.Sprintf("%s: graded step has no exercises", prefix))
			}
			if !s.Graded() && len(s.Exercises) > 0 {
				errs = append(errs, fmt.Sprintf("%s: informational step has exercises", prefix))
			}

			for _, ex := range s.Exercises {
				if keys[ex.Key] {
					errs = append(errs, fmt.Sprintf("%s: duplicate award key %q", prefix, ex.Key))
				}
				keys[ex.Key] = true
				errs = append(errs, validateExercise(prefix, ex)...)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("course validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateExercise(prefix string, ex Exercise) []string {
	var errs []string
	prefix = fmt.Sprintf("%s exercise %q", prefix, ex.Key)

	switch ex.Kind {
	case ExerciseChoice:
		if ex.Choice == nil {
			return append(errs, prefix+": missing choice payload")
		}
		correct := 0
		for _, o := range ex.Choice.Options {
			if o.Correct {
				correct++
			}
		}
		if correct != 1 {
			errs = append(errs, fmt.Sprintf("%s: want exactly one correct option, got %d", prefix, correct))
		}
	case ExerciseClassify:
		if ex.Email == nil {
			return append(errs, prefix+": missing email payload")
		}
		if ex.Email.Phishing && len(ex.Email.SuspiciousElements) == 0 {
			errs = append(errs, prefix+": phishing email lists no suspicious elements")
		}
	case ExerciseStrength:
		if ex.Strength == nil {
			return append(errs, prefix+": missing strength payload")
		}
		if ex.Strength.Threshold < 1 || ex.Strength.Threshold > MaxStrength {
			errs = append(errs, fmt.Sprintf("%s: threshold must be in [1, %d], got %d", prefix, MaxStrength, ex.Strength.Threshold))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q", prefix, ex.Kind))
	}
	return errs
}
