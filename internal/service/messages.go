package service

import (
	"errors"
	"fmt"

	"github.com/omarshaarawi/powerboard/internal/api/snapshot"
	"github.com/omarshaarawi/powerboard/internal/metrics"
)

const originGuidance = "Rankings can't be loaded from a local file. Serve chat_prompt.json over HTTP " +
	"(for example run `python3 -m http.server` in its folder, or drop it in this server's data directory) " +
	"and point SNAPSHOT_URL at the http:// address."

func errorMessage(err error) string {
	var (
		originErr *snapshot.OriginRestriction
		fetchErr  *snapshot.FetchError
		parseErr  *snapshot.ParseError
	)
	switch {
	case errors.As(err, &originErr):
		return originGuidance
	case errors.As(err, &fetchErr):
		if fetchErr.Status != 0 {
			return fmt.Sprintf("Could not load rankings (HTTP %d). Try refreshing.", fetchErr.Status)
		}
		return "Could not reach the rankings data. Try refreshing."
	case errors.Is(err, snapshot.ErrBodyTooLarge):
		return "Rankings data is too large to load."
	case errors.As(err, &parseErr):
		return "Rankings data is not valid JSON."
	default:
		return "Could not load rankings."
	}
}

func outcomeFor(err error) string {
	var (
		originErr *snapshot.OriginRestriction
		parseErr  *snapshot.ParseError
	)
	switch {
	case err == nil:
		return metrics.OutcomeRendered
	case errors.As(err, &originErr):
		return metrics.OutcomeOriginRestricted
	case errors.As(err, &parseErr):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeFetchError
	}
}
