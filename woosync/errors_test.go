package woosync

import (
	"errors"
	"testing"
)

func TestCustomerErrorReason(t *testing.T) {
	got := customerErrorReason(errors.New("duplicate identity keys"))
	if got != "customer_error:duplicate identity keys" {
		t.Fatalf("got %q", got)
	}
}
