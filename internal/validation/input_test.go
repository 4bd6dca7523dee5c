package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

type sampleInput struct {
	Stars    int    `json:"stars" validate:"min=1,max=5"`
	Location string `json:"location" validate:"required"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sampleInput{Stars: 4, Location: "Commons"}))

	err := Struct(sampleInput{Stars: 7})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "stars")
	assert.Contains(t, err.Error(), "location")
}

func TestProofPath(t *testing.T) {
	valid := []string{"", "proofs/abc.jpg", "proofs/abc.JPEG", "u/1/receipt.png", "x.webp"}
	for _, p := range valid {
		assert.NoError(t, ProofPath(p), p)
	}

	invalid := []string{"/etc/passwd.png", "../up.png", "https://x.io/a.png", "proofs/doc.pdf", "proofs/noext"}
	for _, p := range invalid {
		err := ProofPath(p)
		assert.True(t, apperror.IsValidation(err), p)
	}
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("reason", "ok", 1, 5))
	assert.True(t, apperror.IsValidation(ValidateLength("reason", "", 1, 5)))
	assert.True(t, apperror.IsValidation(ValidateLength("reason", "слишком", 1, 5)))
}

func TestPage(t *testing.T) {
	l, o := Page(0, -3)
	assert.Equal(t, DefaultPageLimit, l)
	assert.Equal(t, 0, o)

	l, _ = Page(1000, 0)
	assert.Equal(t, MaxPageLimit, l)
}
