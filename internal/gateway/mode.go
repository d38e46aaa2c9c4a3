package gateway

import "newsinsight/internal/models"

type Mode int

const (
	ModeDummy Mode = iota
	ModeLive
)

func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "dummy"
}

type Operation int

const (
	OpSearch Operation = iota
	OpListLatest
	OpAnalyze
	OpTrending
)

// ResolveMode decides live vs dummy for one operation from a fresh
// credentials snapshot. Pure by design: no ambient state, called before
// every operation. Each operation degrades independently on the key it
// actually needs, so analyze can simulate while search runs live.
func ResolveMode(creds models.Credentials, op Operation) Mode {
	switch op {
	case OpAnalyze:
		if creds.OpenAIAPIKey == "" {
			return ModeDummy
		}
	default:
		if creds.NewsAPIKey == "" {
			return ModeDummy
		}
	}
	return ModeLive
}
