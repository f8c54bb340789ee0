package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", errors.New("secret not found")
	}
	return v, nil
}

func setRequiredEnv(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "salessavvy")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_1")
	t.Setenv("RAZORPAY_KEY_SECRET", "k_secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAZORPAY_TIMEOUT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("PAYMENT_CURRENCY", "")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.RazorpayTimeout)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, []string{"http://localhost:5174"}, cfg.AllowedOrigins)
	assert.Equal(t, "5432", cfg.DB.Port)
}

func TestLoadConfig_MissingGatewayCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAZORPAY_KEY_SECRET")
	assert.NotContains(t, err.Error(), "RAZORPAY_KEY_ID")
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAZORPAY_TIMEOUT", "soon")

	_, err := LoadConfig(context.Background())
	assert.Error(t, err)
}

func TestLoadConfig_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAZORPAY_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RazorpayTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{}
	cfg.DB.Port = "5432"
	cfg.RazorpayKeyID = "from_env"

	applySecrets(context.Background(), cfg, fakeSecrets{
		dbSecretName:       `{"POSTGRES_USER":"u","POSTGRES_PASSWORD":"p","POSTGRES_DB":"d","POSTGRES_HOST":"h"}`,
		razorpaySecretName: `{"RAZORPAY_KEY_SECRET":"from_secret"}`,
	})

	assert.Equal(t, "u", cfg.DB.User)
	assert.Equal(t, "h", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port, "absent keys keep the env value")
	assert.Equal(t, "from_env", cfg.RazorpayKeyID)
	assert.Equal(t, "from_secret", cfg.RazorpayKeySecret)
	assert.NoError(t, cfg.validate())
}

func TestApplySecrets_MissingSecretsKeepEnv(t *testing.T) {
	cfg := &Config{RazorpayKeyID: "id", RazorpayKeySecret: "secret"}
	applySecrets(context.Background(), cfg, fakeSecrets{})
	assert.Equal(t, "secret", cfg.RazorpayKeySecret)
}
