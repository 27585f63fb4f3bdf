package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	t.Run("NoSuchEntity API error", func(t *testing.T) {
		err := &smithy.GenericAPIError{Code: "NoSuchEntity", Message: "user gone"}
		if !IsNotFound(err) {
			t.Fatalf("expected NoSuchEntity to be detected")
		}
	})

	t.Run("wrapped NoSuchEntity", func(t *testing.T) {
		err := fmt.Errorf("listing access keys for alice: %w",
			&smithy.GenericAPIError{Code: "NoSuchEntity", Message: "user gone"})
		if !IsNotFound(err) {
			t.Fatalf("expected wrapped NoSuchEntity to be detected")
		}
	})

	t.Run("other API error", func(t *testing.T) {
		err := &smithy.GenericAPIError{Code: "Throttling", Message: "slow down"}
		if IsNotFound(err) {
			t.Fatalf("expected Throttling to not be a not-found error")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if IsNotFound(errors.New("connection reset")) {
			t.Fatalf("expected plain error to not be a not-found error")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if IsNotFound(nil) {
			t.Fatalf("expected nil to not be a not-found error")
		}
	})
}
