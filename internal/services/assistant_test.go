package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/pkg/config"
)

func assistantFixture(defaultLanguage string) *AssistantService {
	model := &scriptedModel{intentErr: fmt.Errorf("upstream down")}
	router := NewIntentRouter(model, logrus.New())
	cfg := &config.Config{DefaultLanguage: defaultLanguage}
	return NewAssistantService(router, nil, nil, nil, nil, nil, nil, cfg, logrus.New())
}

func TestHandleRespectsExplicitLanguage(t *testing.T) {
	// DEFAULT_LANGUAGE=it must not override a caller asking for English.
	svc := assistantFixture("it")

	reply, err := svc.Handle(context.Background(), 1, "hello there", "en")
	require.NoError(t, err)

	assert.True(t, reply.Degraded)
	assert.Contains(t, reply.Message, "temporarily unavailable")
}

func TestHandleFallsBackToDefaultLanguage(t *testing.T) {
	svc := assistantFixture("it")

	reply, err := svc.Handle(context.Background(), 1, "ciao", "")
	require.NoError(t, err)

	assert.True(t, reply.Degraded)
	assert.Contains(t, reply.Message, "assistente")
}

func TestHandleUnknownLanguageFallsBack(t *testing.T) {
	svc := assistantFixture("en")

	reply, err := svc.Handle(context.Background(), 1, "hola", "es")
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "temporarily unavailable")
}
