// Package console walks the course over a line-oriented reader and writer.
// It drives the same sequencer and store as the terminal UI and applies
// events inline, so the read loop is the single inbox.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/navigation"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/sequencer"
)

// ErrNoSession is returned when the runner has no progress store.
var ErrNoSession = errors.New("console: no progress store")

const (
	cmdNext = ">"
	cmdBack = "<"
	cmdQuit = "q"
)

// Runner is a console course walker.
type Runner struct {
	catalog *course.Catalog
	store   *progress.Store
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger

	seq *sequencer.Sequencer
}

// New creates a runner reading commands from in and writing to out.
func New(catalog *course.Catalog, store *progress.Store, in io.Reader, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		catalog: catalog,
		store:   store,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run walks modules starting at the store's current module until the
// learner quits, the input ends, or the course is finished. It always
// prints the summary before returning.
func (r *Runner) Run(ctx context.Context) error {
	if r.store == nil {
		return ErrNoSession
	}
	defer r.printSummary()

	if err := r.mount(r.store.CurrentModule()); err != nil {
		return err
	}
	if r.seq == nil {
		return nil
	}

	done := make(chan struct{})
	defer close(done)
	lines := r.readLines(done)

	r.printStep()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pending, hasPending := r.pendingExercise()
		if hasPending {
			r.printExercise(pending)
		} else {
			r.printf("\n[%s] siguiente  [%s] anterior  [%s] salir\n", cmdNext, cmdBack, cmdQuit)
		}
		r.printf("> ")

		var in inputLine
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			in = l
		}
		if in.err != nil {
			return fmt.Errorf("read input: %w", in.err)
		}
		line := strings.TrimSpace(in.text)

		switch {
		case line == cmdQuit:
			return nil
		case line == cmdBack:
			if err := r.back(); err != nil {
				return err
			}
		case line == cmdNext || (line == "" && !hasPending):
			done, err := r.next()
			if err != nil || done {
				return err
			}
		case hasPending:
			r.answer(pending, line)
		default:
			r.printf("Comando desconocido %q\n", line)
		}
	}
}

type inputLine struct {
	text string
	err  error
}

// readLines scans input on its own goroutine so Run can watch ctx while a
// read is blocked. The channel is closed at end of input. A scan blocked
// when done closes ends only once the reader returns.
func (r *Runner) readLines(done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for r.in.Scan() {
			select {
			case lines <- inputLine{text: r.in.Text()}:
			case <-done:
				return
			}
		}
		if err := r.in.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}

// mount creates a sequencer for id. A module without steps ends the walk.
func (r *Runner) mount(id int) error {
	m, err := r.catalog.Module(id)
	if err != nil {
		return err
	}
	if !m.Available() {
		r.printf("\n== %s ==\nPróximamente. Este módulo aún no tiene contenido.\n", m.Title)
		r.seq = nil
		return nil
	}
	seq, err := sequencer.New(m, r.catalog.NextID(id))
	if err != nil {
		return err
	}
	r.seq = seq
	r.logger.Debug("module mounted", "module", id)
	return nil
}

func (r *Runner) next() (done bool, err error) {
	out, events := r.seq.Advance()
	r.store.Apply(events...)

	switch out {
	case sequencer.Blocked:
		if r.seq.OnLastStep() && r.seq.IsAnswered() {
			r.printf("Aún faltan ejercicios por completar: %s\n", strings.Join(r.seq.MissingKeys(), ", "))
		} else {
			r.printf("Responde el ejercicio antes de continuar.\n")
		}
		return false, nil
	case sequencer.Moved:
		r.printStep()
		return false, nil
	case sequencer.Finished:
		r.printf("\n¡Has completado el curso!\n")
		return true, nil
	}

	// LeftModule: the store decided whether the move happened.
	if r.store.CurrentModule() == r.seq.Module().ID {
		r.printf("No puedes acceder al siguiente módulo todavía.\n")
		return false, nil
	}
	if err := r.mount(r.store.CurrentModule()); err != nil {
		return true, err
	}
	if r.seq == nil {
		return true, nil
	}
	r.printStep()
	return false, nil
}

func (r *Runner) back() error {
	if !navigation.Evaluate(r.seq, r.store).CanRetreat {
		r.printf("Ya estás en el primer paso.\n")
		return nil
	}
	if navigation.RetreatCrossesModule(r.seq, r.store) {
		prev := r.store.CurrentModule() - 1
		m, err := r.catalog.Module(prev)
		if err != nil {
			return err
		}
		if !m.Available() {
			r.printf("El módulo anterior no tiene contenido.\n")
			return nil
		}
		r.store.Apply(progress.NavigationRequested{ModuleID: prev})
		if err := r.mount(r.store.CurrentModule()); err != nil {
			return err
		}
		r.printStep()
		return nil
	}
	r.seq.Retreat()
	r.printStep()
	return nil
}

// pendingExercise returns the first exercise of the current step that still
// blocks the step's gate.
func (r *Runner) pendingExercise() (course.Exercise, bool) {
	step := r.seq.CurrentStep()
	if !step.Graded() || r.seq.IsAnswered() {
		return course.Exercise{}, false
	}
	for _, ex := range step.Exercises {
		done := r.seq.Attempted(ex.Key)
		if step.AnswerGate() == course.GateCorrect {
			done = r.seq.AnsweredCorrectly(ex.Key)
		}
		if !done {
			return ex, true
		}
	}
	return course.Exercise{}, false
}

func (r *Runner) answer(ex course.Exercise, line string) {
	ans := course.Answer{Text: line}
	if ex.Kind != course.ExerciseStrength {
		n, err := strconv.Atoi(line)
		if err != nil {
			r.printf("Escribe el número de una opción.\n")
			return
		}
		ans.Index = n - 1
	}

	v, err := course.Grade(ex, ans)
	if err != nil {
		r.printf("Opción no válida.\n")
		return
	}

	if ex.Kind == course.ExerciseStrength {
		r.printf("Fortaleza: %d/%d\n", v.Strength, course.MaxStrength)
	}
	mark := "✗"
	if v.Correct {
		mark = "✓"
	}
	if v.Label != "" {
		r.printf("%s [%s] %s\n", mark, v.Label, v.Feedback)
	} else {
		r.printf("%s %s\n", mark, v.Feedback)
	}

	events := r.seq.RecordAnswer(ex.Key, ex.Points, v.Correct)
	r.store.Apply(events...)
	for _, e := range events {
		if pa, ok := e.(progress.PointsAwarded); ok {
			r.printf("+%d puntos\n", pa.Points)
		}
	}

	step := r.seq.CurrentStep()
	if r.seq.IsAnswered() && step.CompletionMessage != "" {
		r.printf("%s\n", step.CompletionMessage)
	}
}

func (r *Runner) printStep() {
	step := r.seq.CurrentStep()
	m := r.seq.Module()
	r.printf("\n== %s · Paso %d/%d: %s ==\n", m.Title, r.seq.StepIndex()+1, r.seq.StepCount(), step.Title)

	if info := step.Info; info != nil {
		if info.Heading != "" {
			r.printf("%s\n", info.Heading)
		}
		for _, p := range info.Paragraphs {
			r.printf("\n%s\n", p)
		}
		if len(info.Bullets) > 0 {
			r.printf("\n")
			for _, b := range info.Bullets {
				r.printf("  • %s\n", b)
			}
		}
		for _, c := range info.Cards {
			r.printf("\n[%s] %s\n", c.Title, c.Body)
		}
	}
}

func (r *Runner) printExercise(ex course.Exercise) {
	r.printf("\n%s\n", ex.Prompt)
	if ex.Kind == course.ExerciseClassify && ex.Email != nil {
		r.printf("  De: %s\n  Asunto: %s\n  %s\n", ex.Email.Sender, ex.Email.Subject, ex.Email.Body)
	}
	if ex.Kind == course.ExerciseStrength {
		r.printf("Escribe una contraseña:\n")
		return
	}
	for i, opt := range course.Options(ex) {
		r.printf("  %d) %s\n", i+1, opt)
	}
}

func (r *Runner) printSummary() {
	p := r.store.GetProgress()
	r.printf("\n== Resumen ==\n")
	for _, m := range r.catalog.Modules {
		st := p.ModuleStatus[m.ID]
		state := "pendiente"
		switch {
		case st.Completed:
			state = "completado"
		case !r.store.CanAccessModule(m.ID):
			state = "bloqueado"
		}
		r.printf("%d. %-32s %-11s %3d pts\n", m.ID, m.Title, state, st.Score)
	}
	r.printf("Puntuación total: %d\n", p.TotalScore)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
