// Package prefs persists the active group and display language.
package prefs

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/logger"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/store"
)

// Change describes an update to a preference.
type Change struct {
	Group    model.GroupID
	Language language.Code
	// GroupChanged is false when only the language changed.
	GroupChanged bool
}

// Prefs holds the current group and language, backed by a KV store.
type Prefs struct {
	kv           store.KV
	namespace    string
	defaultGroup model.GroupID
	log          *logger.Logger

	mu        sync.Mutex
	group     model.GroupID
	lang      language.Code
	listeners []func(Change)
}

// GroupKey returns the key storing the current group.
func GroupKey(namespace string) string {
	return namespace + "-current-group-id"
}

// LanguageKey returns the key storing the display language.
func LanguageKey(namespace string) string {
	return namespace + "-language"
}

// Load reads stored preferences, falling back to defaultGroup and
// defaultLang when values are missing or malformed.
func Load(ctx context.Context, kv store.KV, namespace string, defaultGroup model.GroupID, defaultLang language.Code, log *logger.Logger) *Prefs {
	if log == nil {
		log = logger.Nop()
	}
	if !defaultLang.Valid() {
		defaultLang = language.Default
	}
	p := &Prefs{
		kv:           kv,
		namespace:    namespace,
		defaultGroup: defaultGroup,
		log:          log,
		group:        defaultGroup,
		lang:         defaultLang,
	}

	var group string
	if ok := p.read(ctx, GroupKey(namespace), &group); ok && group != "" {
		p.group = model.GroupID(group)
	}
	var lang string
	if ok := p.read(ctx, LanguageKey(namespace), &lang); ok {
		if code, err := language.Parse(lang); err == nil {
			p.lang = code
		} else {
			log.Warn("ignoring stored language", "value", lang, "error", err)
		}
	}
	return p
}

func (p *Prefs) read(ctx context.Context, key string, dst *string) bool {
	ok, err := store.GetJSON(ctx, p.kv, key, dst)
	if errors.Is(err, store.ErrCorrupt) {
		p.log.Warn("discarding corrupt preference", "key", key, "error", err)
		return false
	}
	if err != nil {
		p.log.Error("failed to read preference", "key", key, "error", err)
		return false
	}
	return ok
}

// Group returns the active group.
func (p *Prefs) Group() model.GroupID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.group
}

// Language returns the active display language.
func (p *Prefs) Language() language.Code {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lang
}

// ResetGroup reverts to the default group without persisting, for stored
// groups that no longer exist in the catalog.
func (p *Prefs) ResetGroup(group model.GroupID) {
	p.mu.Lock()
	p.group = group
	p.mu.Unlock()
}

// SetGroup stores group and notifies listeners. The in-memory value is
// updated even when the write fails.
func (p *Prefs) SetGroup(ctx context.Context, group model.GroupID) error {
	p.mu.Lock()
	changed := p.group != group
	p.group = group
	change := Change{Group: group, Language: p.lang, GroupChanged: true}
	p.mu.Unlock()

	err := store.SetJSON(ctx, p.kv, GroupKey(p.namespace), string(group))
	if changed {
		p.notify(change)
	}
	return err
}

// SetLanguage stores lang and notifies listeners.
func (p *Prefs) SetLanguage(ctx context.Context, lang language.Code) error {
	if !lang.Valid() {
		_, err := language.Parse(string(lang))
		return err
	}
	p.mu.Lock()
	changed := p.lang != lang
	p.lang = lang
	change := Change{Group: p.group, Language: lang}
	p.mu.Unlock()

	err := store.SetJSON(ctx, p.kv, LanguageKey(p.namespace), string(lang))
	if changed {
		p.notify(change)
	}
	return err
}

// OnChange registers fn to run synchronously after every change.
func (p *Prefs) OnChange(fn func(Change)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *Prefs) notify(change Change) {
	p.mu.Lock()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(change)
	}
}
