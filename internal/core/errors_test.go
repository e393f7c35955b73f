package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	verr := validationf("due time must be in the future")
	if !IsValidation(verr) {
		t.Fatal("validationf result not classified as validation")
	}
	if IsNotFound(verr) {
		t.Fatal("validation error misclassified as not-found")
	}
	if verr.Error() != "due time must be in the future" {
		t.Fatalf("unexpected message %q", verr.Error())
	}

	nerr := &NotFoundError{ID: "abc_100"}
	if !IsNotFound(nerr) {
		t.Fatal("NotFoundError not classified as not-found")
	}
	if nerr.Error() != "task with ID abc_100 not found" {
		t.Fatalf("unexpected message %q", nerr.Error())
	}

	if IsValidation(nil) || IsNotFound(nil) {
		t.Fatal("nil must not classify as any error kind")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("plain error misclassified as validation")
	}
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", &NotFoundError{ID: "x_1"})
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped not-found error lost its classification")
	}

	wrapped = fmt.Errorf("handling request: %w", validationf("bad input"))
	if !IsValidation(wrapped) {
		t.Fatal("wrapped validation error lost its classification")
	}
}
