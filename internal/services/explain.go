package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// Static definitions for the metrics the snapshot tracks. Served without a
// model call when the topic resolves to a canonical metric.
var metricDefinitions = map[string]map[string]string{
	"xgShot": {
		"en": "Expected goals (xG): the cumulative quality of a player's shots, measured as the probability each would result in a goal for an average finisher. A striker scoring above their xG is finishing better than the chances deserve.",
		"it": "Expected goals (xG): la qualita complessiva dei tiri di un giocatore, misurata come probabilita che ciascuno diventi gol per un finalizzatore medio. Un attaccante che segna piu del proprio xG sta finalizzando oltre il valore delle occasioni.",
	},
	"xgAssist": {
		"en": "Expected assists (xA): the cumulative goal probability of the chances a player created with their passes, regardless of whether the receiver scored.",
		"it": "Expected assist (xA): la probabilita cumulata di gol delle occasioni create con i passaggi, indipendentemente dal fatto che il ricevente abbia segnato.",
	},
	"progressivePasses": {
		"en": "Progressive passes: completed passes that move the ball significantly closer to the opponent's goal. A core indicator of a player's contribution to ball advancement.",
		"it": "Passaggi progressivi: passaggi riusciti che avvicinano sensibilmente il pallone alla porta avversaria. Un indicatore chiave del contributo alla risalita del campo.",
	},
	"defensiveDuelsWon": {
		"en": "Defensive duels won: the share of one-on-one defensive contests a player wins, covering tackles and physical challenges against the ball carrier.",
		"it": "Duelli difensivi vinti: la percentuale di contrasti difensivi uno contro uno vinti, inclusi tackle e duelli fisici sul portatore di palla.",
	},
	"smartPasses": {
		"en": "Smart passes: creative penetrating passes that break the opponent's defensive lines, attempting to find a teammate in a dangerous position.",
		"it": "Smart pass: passaggi penetranti e creativi che rompono le linee difensive avversarie cercando un compagno in posizione pericolosa.",
	},
	"gkSaves": {
		"en": "Saves: the number of on-target shots the goalkeeper kept out, expressed per 90 minutes.",
		"it": "Parate: il numero di tiri in porta respinti dal portiere, espresso per 90 minuti.",
	},
	"gkSavesPercent": {
		"en": "Saves percentage: the share of on-target shots faced that the goalkeeper kept out.",
		"it": "Percentuale di parate: la quota di tiri in porta subiti che il portiere ha respinto.",
	},
}

// ExplainService answers definition questions about metrics and scouting
// concepts, preferring the static glossary over a model call.
type ExplainService struct {
	model  llm.LanguageModel
	logger *logrus.Logger
}

func NewExplainService(model llm.LanguageModel, logger *logrus.Logger) *ExplainService {
	return &ExplainService{model: model, logger: logger}
}

// Explanation is the response to an explain query.
type Explanation struct {
	Topic    string `json:"topic"`
	Text     string `json:"text"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Explain resolves the topic against the glossary first, then asks the
// model. With neither available the response says so instead of failing.
func (s *ExplainService) Explain(ctx context.Context, topic, language string) *Explanation {
	if language != "it" {
		language = "en"
	}

	canonical := stats.CanonicalMetric(topic)
	if defs, ok := metricDefinitions[canonical]; ok {
		return &Explanation{Topic: canonical, Text: defs[language]}
	}

	text, err := s.fromModel(ctx, topic, language)
	if err != nil {
		s.logger.WithError(err).Warn("Explanation generation failed")
		msg := fmt.Sprintf("No definition available for %q right now. Please try again later.", topic)
		if language == "it" {
			msg = fmt.Sprintf("Nessuna definizione disponibile per %q al momento. Riprova piu tardi.", topic)
		}
		return &Explanation{Topic: topic, Text: msg, Degraded: true}
	}
	return &Explanation{Topic: topic, Text: text}
}

func (s *ExplainService) fromModel(ctx context.Context, topic, language string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("no language model configured")
	}
	prompt := fmt.Sprintf("Explain the football scouting concept %q in 2 to 4 sentences, for a scout familiar with the game but not with analytics jargon.", topic)
	if language == "it" {
		prompt += " Answer in Italian."
	}
	system := "You are a football analytics educator. Give precise, practical definitions."
	return s.model.Complete(ctx, system, []llm.Message{{Role: "user", Content: prompt}})
}
