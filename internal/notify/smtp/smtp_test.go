package smtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	s := New("smtp.example.com", 587, "openday@example.com", "pw")

	msg, err := s.build("ana@x.com", "IBM Journey | Confirmação de inscrição", "Olá Ana,")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ana@x.com")
	assert.Contains(t, out, "openday@example.com")
}

func TestBuild_RejectsBadRecipient(t *testing.T) {
	s := New("smtp.example.com", 465, "openday@example.com", "pw")
	_, err := s.build("not an address", "s", "b")
	assert.Error(t, err)
}

func TestOptionsPickTLSModeByPort(t *testing.T) {
	assert.Len(t, New("h", 465, "a@b.c", "p").options(), 6)
	assert.Len(t, New("h", 587, "a@b.c", "p").options(), 6)
	assert.Equal(t, "smtp", New("h", 587, "a@b.c", "p").Name())
}
