package glview

import (
	"errors"
	"strings"
	"testing"
)

func TestInitError_Wraps(t *testing.T) {
	cause := errors.New("no display")
	err := initError("initialize GLFW", cause)

	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to initialize GLFW: ") {
		t.Errorf("Expected setup stage in message, got %q", err.Error())
	}
}
