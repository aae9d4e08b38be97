package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithOperatorID_OperatorIDFromCtx(t *testing.T) {
	operatorID := uuid.New()
	ctx := WithOperatorID(context.Background(), operatorID)

	got, err := OperatorIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != operatorID {
		t.Fatalf("expected %v, got %v", operatorID, got)
	}
}

func TestOperatorIDFromCtx_EmptyContext(t *testing.T) {
	_, err := OperatorIDFromCtx(context.Background())
	if !errors.Is(err, ErrOperatorIDNotFound) {
		t.Fatalf("expected ErrOperatorIDNotFound, got %v", err)
	}
}

func TestOperatorIDFromCtx_NilUUID(t *testing.T) {
	ctx := WithOperatorID(context.Background(), uuid.Nil)
	_, err := OperatorIDFromCtx(ctx)
	if !errors.Is(err, ErrOperatorIDNotFound) {
		t.Fatalf("expected ErrOperatorIDNotFound for uuid.Nil, got %v", err)
	}
}

func TestOperatorIDFromCtx_Isolation(t *testing.T) {
	operatorID1 := uuid.New()
	operatorID2 := uuid.New()

	ctx1 := WithOperatorID(context.Background(), operatorID1)
	ctx2 := WithOperatorID(context.Background(), operatorID2)

	got1, _ := OperatorIDFromCtx(ctx1)
	got2, _ := OperatorIDFromCtx(ctx2)

	if got1 != operatorID1 {
		t.Fatalf("ctx1: expected %v, got %v", operatorID1, got1)
	}
	if got2 != operatorID2 {
		t.Fatalf("ctx2: expected %v, got %v", operatorID2, got2)
	}
	if got1 == got2 {
		t.Fatal("expected different OperatorIDs in isolated contexts")
	}
}
