package mdblock

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	require.ErrorIs(t, ValidateInput(data), ErrInvalidUTF8)
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := append([]byte("hello"), 0x00)
	require.ErrorIs(t, ValidateInput(data), ErrBinaryInput)
}

func TestValidateInputRejectsControlHeavyInput(t *testing.T) {
	data := append(bytes.Repeat([]byte("a"), 60), 0x01, 0x02, 0x03, 0x04)
	require.ErrorIs(t, ValidateInput(data), ErrBinaryInput)
}

func TestValidateInputAcceptsMarkdown(t *testing.T) {
	require.NoError(t, ValidateInput([]byte("# Title\n\n- item\n\tcode\r\n")))
}
