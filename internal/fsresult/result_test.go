package fsresult

import (
	"errors"
	"io/fs"
	"testing"
)

func TestWrap(t *testing.T) {
	res := Wrap(func() (string, error) { return "/tmp/x", nil })
	if !res.IsOk() {
		t.Fatalf("expected ok, got %s", res.ErrorCode())
	}
	v, ok := res.Value()
	if !ok || v != "/tmp/x" {
		t.Errorf("Value() = %q, %v", v, ok)
	}

	failed := Wrap(func() (string, error) { return "ignored", fs.ErrPermission })
	if failed.IsOk() {
		t.Fatal("expected failure")
	}
	if failed.ErrorCode() != Unauthorized {
		t.Errorf("ErrorCode() = %s, want %s", failed.ErrorCode(), Unauthorized)
	}
	if v, ok := failed.Value(); ok || v != "" {
		t.Errorf("failed result must not carry a value, got %q, %v", v, ok)
	}
	if failed.Status().ErrorCode() != Unauthorized {
		t.Errorf("Status() lost the code")
	}
}

func TestWrapMatchesClassify(t *testing.T) {
	errs := []error{
		fs.ErrNotExist,
		ErrInUse,
		ErrInvalidArgument,
		errors.New("unknown"),
	}
	for _, err := range errs {
		res := Wrap(func() (int, error) { return 0, err })
		if res.ErrorCode() != Classify(err) {
			t.Errorf("Wrap code %s != Classify %s", res.ErrorCode(), Classify(err))
		}
		if res.IsOk() != (res.ErrorCode() == OK) {
			t.Errorf("IsOk disagrees with code %s", res.ErrorCode())
		}
	}
}

func TestDo(t *testing.T) {
	if st := Do(func() error { return nil }); !st.IsOk() {
		t.Errorf("expected ok, got %s", st.ErrorCode())
	}
	if st := Do(func() error { return ErrInUse }); st.ErrorCode() != InUse {
		t.Errorf("got %s, want %s", st.ErrorCode(), InUse)
	}
}

func TestFailNeverOk(t *testing.T) {
	res := Fail[int](OK)
	if res.IsOk() {
		t.Fatal("Fail(OK) must not produce a successful result")
	}
	if res.ErrorCode() != Generic {
		t.Errorf("got %s, want %s", res.ErrorCode(), Generic)
	}
}

func TestStatusFromBool(t *testing.T) {
	if !StatusFromBool(true).IsOk() {
		t.Error("true must be OK")
	}
	if got := StatusFromBool(false).ErrorCode(); got != Generic {
		t.Errorf("false = %s, want %s", got, Generic)
	}
}
