package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "studio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
)

func TestTranslateTxError(t *testing.T) {
	notFound := apperrors.NotFound("booking")
	transient := mongo.CommandError{
		Code:   112,
		Name:   "WriteConflict",
		Labels: []string{driver.TransientTransactionError},
	}

	tests := []struct {
		name   string
		err    error
		target error
		same   bool
	}{
		{name: "nil", err: nil},
		{name: "app error passes through", err: notFound, target: notFound, same: true},
		{name: "transient becomes write conflict", err: transient, target: ErrWriteConflict},
		{name: "other errors are wrapped", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateTxError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			if tt.same {
				assert.Same(t, tt.target, got)
				return
			}
			if tt.target != nil {
				assert.ErrorIs(t, got, tt.target)
				return
			}
			assert.ErrorIs(t, got, tt.err)
			assert.Contains(t, got.Error(), "transaction failed")
		})
	}
}

func TestWithTimeout_KeepsSessionContext(t *testing.T) {
	sessCtx := mongo.NewSessionContext(context.Background(), nil)

	ctx, cancel := WithTimeout(sessCtx, time.Second)
	defer cancel()
	assert.Equal(t, sessCtx, ctx)

	plain, cancelPlain := WithTimeout(context.Background(), time.Second)
	defer cancelPlain()
	_, hasDeadline := plain.Deadline()
	assert.True(t, hasDeadline)
}
