// Package fetcher resolves a language code into its full translation
// payload: a metadata lookup followed by a download of the versioned
// translation file. The WebSocket get_language command and the
// get_translation service call both go through Fetch so the two entry
// points cannot drift apart.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"langsync/internal/store"
)

const requestTimeout = 10 * time.Second

// Result is the answer for one language request. It is serialized verbatim
// to callers, so failures carry only success and error while successes carry
// the full set of keys.
type Result map[string]interface{}

func failure(format string, args ...interface{}) Result {
	return Result{
		"success": false,
		"error":   fmt.Sprintf(format, args...),
	}
}

type Fetcher struct {
	store *store.Store
	http  *resty.Client

	mu      sync.RWMutex
	baseURL string
}

func New(s *store.Store, baseURL string) *Fetcher {
	return &Fetcher{
		store:   s,
		http:    resty.New().SetTimeout(requestTimeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetBaseURL swaps the translation file location, typically after a config
// reload.
func (f *Fetcher) SetBaseURL(baseURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseURL = strings.TrimRight(baseURL, "/")
}

// BaseURL returns the currently configured translation file location.
func (f *Fetcher) BaseURL() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.baseURL
}

// Fetch returns the translation payload for language, or a failure Result.
// It never returns an error: every failure mode collapses into a
// descriptive result so callers can forward it as-is.
func (f *Fetcher) Fetch(ctx context.Context, language string) Result {
	entry, ok := f.store.Language(language)
	if !ok {
		return failure("Language %s not found", language)
	}

	hash := entry.Hash()
	if hash == "" {
		return failure("No hash for %s", language)
	}

	url := fmt.Sprintf("%s/static/translations/%s-%s.json", f.BaseURL(), language, hash)

	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Error("Error fetching translation", "language", language, "error", err)
		return failure("%s", err)
	}

	if resp.IsError() {
		return failure("HTTP error %d", resp.StatusCode())
	}

	var data interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		log.Error("JSON decode error", "language", language, "error", err)
		return failure("Invalid JSON response")
	}

	return Result{
		"success":    true,
		"language":   language,
		"nativeName": entry.NativeName(language),
		"isRTL":      entry.IsRTL(),
		"hash":       hash,
		"data":       data,
	}
}
