package yamlscript_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetic/pkg/adapters/yamlscript"
)

func TestLoad(t *testing.T) {
	src := yamlscript.NewSource(filepath.Join("testdata", "inquiry.yaml"))
	script, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Hey, thanks for stopping by! What kind of work are you looking for?", script.Greeting)
	assert.Equal(t, []string{"Design", "Development", "Branding", "Something else"}, script.Work.Options)
	assert.Equal(t, "Nice. How did you find me?", script.Source.Prompt)
	assert.Equal(t, "hello@example.com", script.Recipient)
	assert.Equal(t, 450*time.Millisecond, script.TypingDelay)
	assert.Equal(t, "en", script.Metadata["locale"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := yamlscript.NewSource(filepath.Join("testdata", "nope.yaml")).Load(context.Background())
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := yamlscript.Parse([]byte("greeting: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("fails validation", func(t *testing.T) {
		_, err := yamlscript.Parse([]byte("greeting: hi\nrecipient: hello@example.com\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "work question")
	})

	t.Run("bad duration", func(t *testing.T) {
		doc := []byte("greeting: hi\nwork:\n  options: [Design]\nsource:\n  prompt: how\n  options: [Search]\nrecipient: hello@example.com\ntyping_delay: soonish\n")
		_, err := yamlscript.Parse(doc)
		assert.Error(t, err)
	})
}
