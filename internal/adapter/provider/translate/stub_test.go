package translate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

func TestStub_Translate_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewStub().Translate(context.Background(), "hello", "es")

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStub_FanOutMarksEveryLanguage(t *testing.T) {
	t.Parallel()

	got := NewFanOut(NewStub(), time.Second, newTestLogger()).
		FetchTranslations(context.Background(), "w", []string{"es", "hi", "te"})

	assert.Equal(t, domain.Translations{"es": "", "hi": "", "te": ""}, got)
}
