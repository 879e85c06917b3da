package course

// FirstModuleID is the id of the module that is always accessible.
const FirstModuleID = 1

// StepKind tags a step as informational or graded.
type StepKind string

const (
	StepInformational StepKind = "informational"
	StepGraded        StepKind = "graded"
)

// AnswerGate decides when a graded step counts as answered.
type AnswerGate string

const (
	GateAny     AnswerGate = "any"     // every exercise attempted, right or wrong
	GateCorrect AnswerGate = "correct" // every exercise answered correctly this visit
)

// ExerciseKind selects the payload and grading rule of an exercise.
type ExerciseKind string

const (
	ExerciseChoice   ExerciseKind = "choice"
	ExerciseClassify ExerciseKind = "classify"
	ExerciseStrength ExerciseKind = "strength"
)

// Card is a small titled block of text.
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Info is the renderable payload of an informational step. Graded steps may
// carry one too, shown above their exercises.
type Info struct {
	Heading    string   `json:"heading,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Cards      []Card   `json:"cards,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
}

// Option is a single answer of a choice exercise.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
	Label   string `json:"label,omitempty"`
}

// Choice is a multiple-choice exercise payload.
type Choice struct {
	Options           []Option `json:"options"`
	CorrectFeedback   string   `json:"correct_feedback"`
	IncorrectFeedback string   `json:"incorrect_feedback"`
}

// Email is a classify exercise payload: decide whether a message is phishing.
type Email struct {
	Sender             string   `json:"sender"`
	Subject            string   `json:"subject"`
	Body               string   `json:"body"`
	Phishing           bool     `json:"phishing"`
	SuspiciousElements []string `json:"suspicious_elements,omitempty"`
}

// StrengthRule is a strength exercise payload: the learner types a password
// and it is scored 0..MaxStrength.
type StrengthRule struct {
	MinLength int    `json:"min_length"`
	Threshold int    `json:"threshold"`
	Excellent string `json:"excellent"`
	Good      string `json:"good"`
	Weak      string `json:"weak"`
}

// Exercise is one graded interaction. Exactly one of Choice, Email or
// Strength is set, matching Kind.
type Exercise struct {
	Kind     ExerciseKind  `json:"kind"`
	Key      string        `json:"key"`
	Points   int           `json:"points"`
	Prompt   string        `json:"prompt,omitempty"`
	Choice   *Choice       `json:"choice,omitempty"`
	Email    *Email        `json:"email,omitempty"`
	Strength *StrengthRule `json:"strength,omitempty"`
}

// Step is one screen within a module.
type Step struct {
	Title             string     `json:"title"`
	Kind              StepKind   `json:"kind"`
	Info              *Info      `json:"info,omitempty"`
	Exercises         []Exercise `json:"exercises,omitempty"`
	Gate              AnswerGate `json:"gate,omitempty"`
	CompletionMessage string     `json:"completion_message,omitempty"`
}

// Graded reports whether the step requires an answer to unlock progression.
func (s Step) Graded() bool {
	return s.Kind == StepGraded
}

// AnswerGate returns the step's gate, defaulting to GateAny.
func (s Step) AnswerGate() AnswerGate {
	if s.Gate == "" {
		return GateAny
	}
	return s.Gate
}

// AwardKeys returns the award keys of the step's exercises in order.
func (s Step) AwardKeys() []string {
	keys := make([]string, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		keys = append(keys, ex.Key)
	}
	return keys
}

// Exercise returns the exercise with the given award key.
func (s Step) Exercise(key string) (Exercise, bool) {
	for _, ex := range s.Exercises {
		if ex.Key == key {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Module is one graded unit of the course.
type Module struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps,omitempty"`
}

// Available reports whether the module has content to walk through.
func (m Module) Available() bool {
	return len(m.Steps) > 0
}

// AwardKeys returns every award key of the module's graded steps.
func (m Module) AwardKeys() []string {
	var keys []string
	for _, s := range m.Steps {
		if s.Graded() {
			keys = append(keys, s.AwardKeys()...)
		}
	}
	return keys
}

// MaxScore is the sum of points over all graded exercises.
func (m Module) MaxScore() int {
	total := 0
	for _, s := range m.Steps {
		if !s.Graded() {
			continue
		}
		for _, ex := range s.Exercises {
			total += ex.Points
		}
	}
	return total
}

// GradedSteps counts the module's graded steps.
func (m Module) GradedSteps() int {
	n := 0
	for _, s := range m.Steps {
		if s.Graded() {
			n++
		}
	}
	return n
}
