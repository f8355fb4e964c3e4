package service

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestTemporary(t *testing.T) {
	err := fmt.Errorf("plain")
	if Temporary(err) {
		t.Error("plain error must not be temporary")
	}
	if !Temporary(MakeTemporary(err)) {
		t.Error("marked error must be temporary")
	}
	if !Temporary(fmt.Errorf("wrapped: %w", MakeTemporary(err))) {
		t.Error("wrapped marked error must be temporary")
	}
	if !Temporary(context.DeadlineExceeded) {
		t.Error("deadline exceeded must be temporary")
	}
}

func TestRetriable(t *testing.T) {
	i := 0
	ctx := context.Background()
	tim := time.Now()
	err := Retriable(ctx, func() error {
		i++
		return fmt.Errorf("%d", i)
	}, time.Microsecond, 3)

	if time.Since(tim) < 3*time.Microsecond {
		t.Errorf("err: excepted at least 3µs got %v", time.Since(tim))
	}

	if err == nil {
		t.Error("err: excepted 3 got nil")
	}
	if err.Error() != "3" {
		t.Error("err: excepted 3 got " + err.Error())
	}
}

func TestRetriableFatal(t *testing.T) {
	i := 0
	err := Retriable(context.Background(), func() error {
		i++
		return MakeFatal(fmt.Errorf("%d", i))
	}, time.Microsecond, 3)

	if i != 1 {
		t.Errorf("expected 1 try on a fatal error, got %d", i)
	}
	if err == nil || err.Error() != "1" {
		t.Errorf("expected 1, got %v", err)
	}
}

func TestFatal(t *testing.T) {
	err := fmt.Errorf("plain")
	if Fatal(err) {
		t.Error("plain error must not be fatal")
	}
	if !Fatal(MakeFatal(err)) {
		t.Error("marked error must be fatal")
	}
	if !Fatal(fmt.Errorf("wrapped: %w", MakeFatal(err))) {
		t.Error("wrapped marked error must be fatal")
	}
}
