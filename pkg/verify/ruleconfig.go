package verify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// RuleCatalogue holds the Compliance Rule Tables: restricted terms,
// periodicity words, and restricted prefix/suffix entries. Loaded once at
// startup and treated as read-only thereafter.
type RuleCatalogue struct {
	RestrictedTerms     map[string]bool `yaml:"-"`
	PeriodicityTerms    map[string]bool `yaml:"-"`
	RestrictedPrefixes  map[string]bool `yaml:"-"`
	RestrictedSuffixes  map[string]bool `yaml:"-"`
}

// ruleCatalogueFile mirrors the on-disk JSON/YAML rule-catalogue document:
// top-level keys {restricted_terms, periodicity_terms, restricted_prefix_suffix,
// ...other categories}. Every key other than periodicity_terms and
// restricted_prefix_suffix is unioned into the restricted-terms blacklist;
// restricted_prefix_suffix populates both prefix and suffix sets (an entry
// like "test-" is a prefix, "-beta" a suffix).
type ruleCatalogueFile struct {
	RestrictedTerms        []string            `yaml:"restricted_terms"`
	PeriodicityTerms       []string            `yaml:"periodicity_terms"`
	RestrictedPrefixSuffix []string            `yaml:"restricted_prefix_suffix"`
	OtherCategories        map[string][]string `yaml:",inline"`
}

var (
	ruleCatalogue   *RuleCatalogue
	ruleCatalogueMu sync.RWMutex
)

// defaultRestrictedTerms is the hardcoded fallback blacklist used when no
// rule catalogue file is configured; it matches the terms the original
// restricted-terms validator shipped with.
var defaultRestrictedTerms = []string{
	"police", "army", "cbi", "cid", "government", "ministry",
}

// defaultPeriodicityTerms mirrors the periodicity validator's fallback set.
var defaultPeriodicityTerms = []string{
	"daily", "weekly", "monthly", "fortnightly", "annual",
}

// defaultPrefixes/defaultSuffixes mirror the prefix/suffix validator's
// fallback entries (environment-marker titles like "test-Herald" or
// "Herald-beta" are disallowed in a production registry).
var defaultPrefixes = []string{"test-", "prod-"}
var defaultSuffixes = []string{"-beta", "-dev"}

// LoadRuleCatalogue loads the Compliance Rule Tables from a YAML file under
// configDir. A missing file is not an error — it falls back to the
// hardcoded defaults, so the engine works without any config present.
func LoadRuleCatalogue(configDir string) error {
	path := filepath.Join(configDir, "restricted_terms.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read rule catalogue file: %w", err)
	}

	var doc ruleCatalogueFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse rule catalogue: %w", err)
	}

	cat := &RuleCatalogue{
		RestrictedTerms:    toSet(doc.RestrictedTerms),
		PeriodicityTerms:   toSet(doc.PeriodicityTerms),
		RestrictedPrefixes: map[string]bool{},
		RestrictedSuffixes: map[string]bool{},
	}
	for _, entry := range doc.RestrictedPrefixSuffix {
		if len(entry) == 0 {
			continue
		}
		if entry[len(entry)-1] == '-' {
			cat.RestrictedPrefixes[entry] = true
		} else if entry[0] == '-' {
			cat.RestrictedSuffixes[entry] = true
		}
	}
	for _, terms := range doc.OtherCategories {
		for _, t := range terms {
			cat.RestrictedTerms[t] = true
		}
	}

	ruleCatalogueMu.Lock()
	ruleCatalogue = cat
	ruleCatalogueMu.Unlock()

	log.Printf("[INFO] loaded rule catalogue from %s (%d restricted terms)", path, len(cat.RestrictedTerms))
	return nil
}

// ResetRuleCatalogue clears the loaded catalogue, restoring fallback
// defaults. Used in tests to keep a clean global state.
func ResetRuleCatalogue() {
	ruleCatalogueMu.Lock()
	ruleCatalogue = nil
	ruleCatalogueMu.Unlock()
}

// GetRuleCatalogue returns the loaded catalogue, or the hardcoded default
// fallbacks if none was loaded.
func GetRuleCatalogue() *RuleCatalogue {
	ruleCatalogueMu.RLock()
	defer ruleCatalogueMu.RUnlock()

	if ruleCatalogue != nil {
		return ruleCatalogue
	}
	return &RuleCatalogue{
		RestrictedTerms:    toSet(defaultRestrictedTerms),
		PeriodicityTerms:   toSet(defaultPeriodicityTerms),
		RestrictedPrefixes: toSet(defaultPrefixes),
		RestrictedSuffixes: toSet(defaultSuffixes),
	}
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, i := range items {
		out[i] = true
	}
	return out
}
