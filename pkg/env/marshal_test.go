package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		Provider string  `env:"CASA_LLM_PROVIDER" envDefault:"openai"`
		APIKey   string  `env:"CASA_OPENAI_API_KEY,required,notEmpty"`
		OwnerID  int64   `env:"CASA_TELEGRAM_OWNER_ID"`
		Temp     float64 `env:"CASA_TEMPERATURE"`
		Debug    bool    `env:"CASA_DEBUG"`
		NoTag    string
		skipped  string `env:"CASA_HIDDEN"`
	}

	c := cfg{
		Provider: "anthropic",
		APIKey:   "sk-test",
		OwnerID:  42,
		Debug:    true,
		NoTag:    "ignored",
		skipped:  "ignored",
	}

	out, err := MarshalEnv(&c)
	require.NoError(t, err)

	assert.Equal(t, "CASA_LLM_PROVIDER=anthropic\nCASA_OPENAI_API_KEY=sk-test\nCASA_TELEGRAM_OWNER_ID=42\nCASA_DEBUG=true\n", out)
}

func TestMarshalEnvValueSemantics(t *testing.T) {
	type cfg struct {
		Model string `env:"CASA_MODEL"`
	}

	out, err := MarshalEnv(cfg{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "CASA_MODEL=gpt-4o\n", out)
}

func TestMarshalEnvRejectsNonStruct(t *testing.T) {
	_, err := MarshalEnv("not a struct")
	assert.Error(t, err)
}
