package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	var steps []ExecutionStep

	op := Operation[int, int, int, string]{
		Name: "double",
		Validate: func(context.Context, int) error {
			steps = append(steps, StepValidate)
			return nil
		},
		Perform: func(_ context.Context, in int) (int, error) {
			steps = append(steps, StepPerform)
			return in * 2, nil
		},
		Verify: func(_ context.Context, _ int, p int) (int, error) {
			steps = append(steps, StepVerify)
			return p + 1, nil
		},
		Archive: func(context.Context, int, int) error {
			steps = append(steps, StepArchive)
			return nil
		},
		Respond: func(_ context.Context, _ int, v int) (string, error) {
			steps = append(steps, StepRespond)
			return "ok", nil
		},
	}

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 3)
	require.NoError(t, err)

	assert.Equal(t, "ok", out)
	assert.Equal(t, []ExecutionStep{StepValidate, StepPerform, StepVerify, StepArchive, StepRespond}, steps)
}

func TestExecute_StopsAtFailingStep(t *testing.T) {
	archived := false
	saveErr := errors.New("disk full")

	op := Operation[int, int, int, int]{
		Name:    "save",
		Perform: func(_ context.Context, in int) (int, error) { return in, nil },
		Verify: func(_ context.Context, _ int, p int) (int, error) {
			if p < 0 {
				return 0, domain.NewValidationError("n", "must not be negative")
			}

			return p, nil
		},
		Archive: func(context.Context, int, int) error {
			archived = true
			return saveErr
		},
	}

	_, err := Execute(context.Background(), NewExecutor(nil), op, -1)
	require.ErrorIs(t, err, domain.ErrValidation)

	step, ok := GetExecutionStep(err)
	require.True(t, ok)
	assert.Equal(t, StepVerify, step)
	assert.False(t, archived)

	_, err = Execute(context.Background(), NewExecutor(nil), op, 1)
	require.ErrorIs(t, err, saveErr)
	assert.EqualError(t, err, "archive: disk full")
	assert.True(t, archived)

	_, ok = GetExecutionStep(errors.New("plain"))
	assert.False(t, ok)
}
