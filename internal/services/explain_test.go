package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestExplainResolvesGlossaryAliases(t *testing.T) {
	svc := NewExplainService(nil, logrus.New())

	explanation := svc.Explain(context.Background(), "expected_goals", "en")
	assert.Equal(t, "xgShot", explanation.Topic)
	assert.False(t, explanation.Degraded)
}

func TestExplainDistinguishesSavesFromSavePercentage(t *testing.T) {
	svc := NewExplainService(nil, logrus.New())

	saves := svc.Explain(context.Background(), "saves", "en")
	assert.Equal(t, "gkSaves", saves.Topic)
	assert.Contains(t, saves.Text, "per 90")

	savePct := svc.Explain(context.Background(), "save_percentage", "en")
	assert.Equal(t, "gkSavesPercent", savePct.Topic)
	assert.Contains(t, savePct.Text, "share of on-target shots")
}

func TestExplainDegradesWithoutModel(t *testing.T) {
	svc := NewExplainService(nil, logrus.New())

	explanation := svc.Explain(context.Background(), "gegenpressing", "it")
	assert.True(t, explanation.Degraded)
	assert.Contains(t, explanation.Text, "Nessuna definizione")
}
