package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	text  string
	err   error
	calls int
}

func (s *stubClient) Provider() string { return "stub" }

func (s *stubClient) Complete(ctx context.Context, prompt string, mc ModelConfig) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestGateway_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client := &stubClient{text: "descrição"}
		gw := NewGateway(client)

		text, err := gw.Generate(ctx, "p", ModelConfig{Temperature: DefaultTemperature})
		require.NoError(t, err)
		assert.Equal(t, "descrição", text)
		assert.Equal(t, 1, client.calls)
		assert.Equal(t, "stub", gw.Provider())
	})

	t.Run("single attempt on failure", func(t *testing.T) {
		client := &stubClient{err: errors.New("googleapi: Error 429: quota exhausted")}
		gw := NewGateway(client)

		_, err := gw.Generate(ctx, "p", ModelConfig{})
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeQuotaExceeded))
		assert.Equal(t, 1, client.calls)
	})

	t.Run("invalid temperature never calls provider", func(t *testing.T) {
		client := &stubClient{text: "x"}
		gw := NewGateway(client)

		_, err := gw.Generate(ctx, "p", ModelConfig{Temperature: 1.5})
		assert.Error(t, err)
		assert.Zero(t, client.calls)
	})

	t.Run("missing credential passes through", func(t *testing.T) {
		gw := NewGateway(&stubClient{err: ErrMissingCredential})
		_, err := gw.Generate(ctx, "p", ModelConfig{})
		assert.ErrorIs(t, err, ErrMissingCredential)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"429 text", errors.New("status 429 Too Many Requests"), CodeQuotaExceeded},
		{"quota text", errors.New("Quota exceeded for project"), CodeQuotaExceeded},
		{"rate limit text", errors.New("rate limit reached"), CodeQuotaExceeded},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED"), CodeQuotaExceeded},
		{"401 text", errors.New("401 unauthorized"), CodeAuthentication},
		{"api key text", errors.New("API key not valid. Please pass a valid API key."), CodeAuthentication},
		{"network", errors.New("connection reset by peer"), CodeUnclassified},
		{"structured", &Error{Code: CodeAuthentication, Message: "x"}, CodeAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := Classify(tt.err)
			require.NotNil(t, ge)
			assert.Equal(t, tt.want, ge.Code)
		})
	}

	assert.Nil(t, Classify(nil))
}

func TestModelConfig_Validate(t *testing.T) {
	assert.NoError(t, ModelConfig{Temperature: 0}.Validate())
	assert.NoError(t, ModelConfig{Temperature: 1}.Validate())
	assert.Error(t, ModelConfig{Temperature: -0.1}.Validate())
	assert.Error(t, ModelConfig{Temperature: 1.01}.Validate())
}
