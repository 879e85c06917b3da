package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
)

func walk(t *testing.T, store *progress.Store, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	r := New(course.Default(), store, in, &out, nil)
	require.NoError(t, r.Run(context.Background()))
	return out.String()
}

func unlockPhishing(store *progress.Store) {
	store.Apply(progress.ModuleCompleted{ModuleID: 1, Score: 50}, progress.NavigationRequested{ModuleID: 2})
}

func TestRun_PasswordModuleFullWalk(t *testing.T) {
	store := progress.NewStore()
	out := walk(t, store,
		"",             // intro
		"3",            // strong password
		"",             // next
		"abc",          // weak, gate stays closed
		"Abcdefghij1!", // excellent
		"",             // next
		"3",            // password manager
		"",             // leave module
		"q",
	)

	assert.Contains(t, out, "¡Excelente elección!")
	assert.Contains(t, out, "+10 puntos")
	assert.Contains(t, out, "Tu contraseña necesita más elementos de seguridad")
	assert.Contains(t, out, "Fortaleza: 4/4")
	assert.Contains(t, out, "¡Excelente contraseña!")
	assert.Contains(t, out, "Detectives del Phishing")

	p := store.GetProgress()
	assert.Equal(t, 2, p.CurrentModuleID)
	assert.Equal(t, progress.ModuleStatus{Completed: true, Score: 50}, p.ModuleStatus[1])
	assert.Equal(t, 50, p.TotalScore)
	assert.Contains(t, out, "Puntuación total: 50")
}

func TestRun_WeakPasswordStillProceeds(t *testing.T) {
	store := progress.NewStore(progress.WithPolicy(progress.ScoreRunning))
	out := walk(t, store, "", "1", "", "q")

	assert.Contains(t, out, "Esta contraseña no es lo suficientemente segura.")
	assert.NotContains(t, out, "+10 puntos")
	assert.Contains(t, out, "Paso 3/4")
	assert.Equal(t, 0, store.GetProgress().TotalScore)
}

func TestRun_BlockedUntilAnswered(t *testing.T) {
	out := walk(t, progress.NewStore(), "", ">", "q")
	assert.Contains(t, out, "Responde el ejercicio antes de continuar.")
}

func TestRun_IncompleteModuleCannotBeLeft(t *testing.T) {
	store := progress.NewStore()
	out := walk(t, store,
		"", "1", // wrong password choice
		"", "Abc1!",
		"", "3",
		">",
		"q",
	)
	assert.Contains(t, out, "Aún faltan ejercicios por completar: choose_password")
	assert.Equal(t, 1, store.CurrentModule())
	assert.False(t, store.CanAccessModule(2))
}

func TestRun_PhishingMisclassified(t *testing.T) {
	store := progress.NewStore()
	unlockPhishing(store)

	out := walk(t, store, "", "1", "1", "q")

	assert.Contains(t, out, "Incorrecto. Este era un correo fraudulento. Elementos sospechosos: Dominio incorrecto, Sentido de urgencia, Enlaces sospechosos")
	assert.Contains(t, out, "¡Correcto! Este es un correo legítimo.")
	assert.Contains(t, out, "¡Excelente trabajo! Has completado todos los ejercicios de detección")
	assert.Equal(t, 10, store.RunningScore())
}

func TestRun_PhishingModuleFullWalk(t *testing.T) {
	store := progress.NewStore()
	unlockPhishing(store)

	out := walk(t, store, "", "2", "1", "", "", "2", "", "q")

	assert.Contains(t, out, "¡Felicitaciones! Has completado el módulo de Detectives del Phishing")
	assert.Contains(t, out, "Próximamente")
	assert.Equal(t, 3, store.CurrentModule())
	assert.Equal(t, 90, store.GetProgress().TotalScore)
}

func TestRun_RetreatCrossesModule(t *testing.T) {
	store := progress.NewStore()
	unlockPhishing(store)

	out := walk(t, store, "<", "q")
	assert.Contains(t, out, "Guardianes de las Contraseñas · Paso 1/4")
	assert.Equal(t, 1, store.CurrentModule())
}

func TestRun_RetreatOnFirstStep(t *testing.T) {
	out := walk(t, progress.NewStore(), "<", "q")
	assert.Contains(t, out, "Ya estás en el primer paso.")
}

func TestRun_InvalidOption(t *testing.T) {
	out := walk(t, progress.NewStore(), "", "x", "9", "q")
	assert.Contains(t, out, "Escribe el número de una opción.")
	assert.Contains(t, out, "Opción no válida.")
}

func TestRun_EOFEndsWalk(t *testing.T) {
	var out bytes.Buffer
	r := New(course.Default(), progress.NewStore(), strings.NewReader(""), &out, nil)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "== Resumen ==")
}

func TestRun_NoStore(t *testing.T) {
	r := New(course.Default(), nil, strings.NewReader(""), &bytes.Buffer{}, nil)
	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(course.Default(), progress.NewStore(), strings.NewReader("\n"), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	r := New(course.Default(), progress.NewStore(), pr, io.Discard, nil)

	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ReadError(t *testing.T) {
	pr, pw := io.Pipe()
	boom := errors.New("boom")
	go func() {
		_, _ = pw.Write([]byte("\n"))
		pw.CloseWithError(boom)
	}()

	r := New(course.Default(), progress.NewStore(), pr, io.Discard, nil)
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "read input")
}

func TestRun_ShowsOptionLabel(t *testing.T) {
	out := walk(t, progress.NewStore(), "", "1", "q")
	assert.Contains(t, out, "✗ [débil] Esta contraseña no es lo suficientemente segura.")
}
