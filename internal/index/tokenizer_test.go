package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplits(t *testing.T) {
	tokens := Tokenize("Database Connection POOL")
	assert.Equal(t, []string{"database", "connection", "pool"}, tokens)
}

func TestTokenize_DropsStopWords(t *testing.T) {
	tokens := Tokenize("the server is started and the pool was drained")
	assert.Equal(t, []string{"server", "started", "pool", "drained"}, tokens)
}

func TestTokenize_DropsShortTerms(t *testing.T) {
	// Two characters or fewer never index, even outside the stopword set.
	tokens := Tokenize("go db rpc server")
	assert.Equal(t, []string{"rpc", "server"}, tokens)
}

func TestTokenize_PreservesDuplicates(t *testing.T) {
	tokens := Tokenize("retry retry retry backoff")
	assert.Equal(t, []string{"retry", "retry", "retry", "backoff"}, tokens)
}

func TestTokenize_UnderscoresAndDigits(t *testing.T) {
	tokens := Tokenize("auth_token v2_schema utf8")
	assert.Equal(t, []string{"auth_token", "v2_schema", "utf8"}, tokens)
}

func TestTokenize_NoLeadingDigitTerms(t *testing.T) {
	// Terms must start with a letter; "2fa" should not survive as "fa".
	tokens := Tokenize("2fa 3rdparty config")
	assert.Equal(t, []string{"config"}, tokens)
}

func TestTokenize_PunctuationOnly(t *testing.T) {
	assert.Empty(t, Tokenize("... --- !!! 123 456"))
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}
