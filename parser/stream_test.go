package parser

import (
	"strings"
	"testing"
)

func TestStreamSinkIncompleteErrors(t *testing.T) {
	r := strings.NewReader("root\n  emit \"a\"\n")
	stream := NewStream(r, 1024)
	for {
		if _, err := stream.Parse(); err != nil {
			break
		}
	}

	if _, err := stream.Sink(); err == nil {
		t.Fatalf("expected Sink to error on an unterminated trailing block")
	}
}
