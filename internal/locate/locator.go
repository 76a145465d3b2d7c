// Package locate answers "where is truck 982" style queries by fanning out
// to every configured vehicle location source and merging the results by
// provider priority.
package locate

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/fleetop/dispatcher/internal/adapter/telemetry"
	"github.com/fleetop/dispatcher/internal/domain"
)

// providerPriority orders sources best first: live providers beat the
// simulated placeholder.
var providerPriority = []domain.Provider{
	domain.ProviderMotive,
	domain.ProviderTelematicsB,
	domain.ProviderSimulated,
}

var keywordPattern = regexp.MustCompile(`(?i)\b(?:truck|unit|tractor|trailer)s?\s+#?\s*([A-Za-z0-9-]+)`)

// Locator queries all sources concurrently and picks the best match.
type Locator struct {
	sources     []telemetry.Source
	callTimeout time.Duration
}

// New creates a Locator. Each provider call is bounded by callTimeout so a
// stalled provider cannot stall the whole lookup.
func New(callTimeout time.Duration, sources ...telemetry.Source) *Locator {
	return &Locator{
		sources:     sources,
		callTimeout: callTimeout,
	}
}

// Locate extracts an identifier token from the raw query, asks every source
// for it at once, and merges by provider priority. A nil vehicle means no
// source knew the identifier; provider failures degrade to misses.
func (l *Locator) Locate(ctx context.Context, orgID, rawQuery string) (*domain.Vehicle, error) {
	token := ExtractQueryToken(rawQuery)
	if token == "" {
		return nil, nil
	}

	results := make([][]domain.Vehicle, len(l.sources))
	var wg sync.WaitGroup
	for i, src := range l.sources {
		wg.Add(1)
		go func(i int, src telemetry.Source) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, l.callTimeout)
			defer cancel()
			vehicles, err := src.FindVehicles(callCtx, orgID, token)
			if err != nil {
				log.Printf("WARN: %s vehicle lookup failed for %q: %v", src.Provider(), token, err)
				return
			}
			results[i] = vehicles
		}(i, src)
	}
	wg.Wait()

	byProvider := make(map[domain.Provider][]domain.Vehicle)
	for _, vehicles := range results {
		for _, v := range vehicles {
			byProvider[v.Provider] = append(byProvider[v.Provider], v)
		}
	}

	for _, provider := range providerPriority {
		if vehicles := byProvider[provider]; len(vehicles) > 0 {
			best := freshest(vehicles)
			return &best, nil
		}
	}
	return nil, nil
}

func freshest(vehicles []domain.Vehicle) domain.Vehicle {
	best := vehicles[0]
	for _, v := range vehicles[1:] {
		if v.RecordedAt.After(best.RecordedAt) {
			best = v
		}
	}
	return best
}

// ExtractQueryToken pulls the vehicle identifier out of a free-text query.
// Rules are tried in order: a token anchored to a fleet keyword, the last
// token mixing letters and digits, the last numeric token, the last token.
func ExtractQueryToken(raw string) string {
	if m := keywordPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}

	tokens := tokenize(raw)
	if len(tokens) == 0 {
		return ""
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		if hasLetter(tokens[i]) && hasDigit(tokens[i]) {
			return tokens[i]
		}
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if isNumeric(tokens[i]) {
			return tokens[i]
		}
	}
	return tokens[len(tokens)-1]
}

// tokenize splits on whitespace and strips punctuation from token edges,
// keeping inner hyphens ("TR-982?" becomes "TR-982").
func tokenize(raw string) []string {
	var tokens []string
	for _, field := range strings.Fields(raw) {
		tok := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
